package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitdesk-station/internal/domain"
	"visitdesk-station/internal/service"
)

func testRecord() domain.InvitationRecord {
	return domain.InvitationRecord{
		ID:                 7,
		InvitationNumber:   "INV-2024-0007",
		Status:             domain.InvitationStatusApproved,
		ScheduledStartTime: time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		ScheduledEndTime:   time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC),
		Visitor:            domain.Visitor{FirstName: "Ada", LastName: "Lovelace"},
		Host:               domain.Host{Name: "Grace Hopper", Email: "grace@example.com"},
	}
}

func TestClient_GetByReference(t *testing.T) {
	rec := testRecord()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/invitations/by-number/INV-2024-0007", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(rec)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token-123", 5*time.Second)
	got, err := c.GetByReference(context.Background(), "INV-2024-0007")
	require.NoError(t, err)
	assert.Equal(t, rec.InvitationNumber, got.InvitationNumber)
	assert.True(t, rec.ScheduledStartTime.Equal(got.ScheduledStartTime))
}

func TestClient_GetByReferenceEscapesPayload(t *testing.T) {
	// A QR payload is arbitrary text; separators in it must not address
	// a different path on the invitation service.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/invitations/by-number/INV%2F2024%200042%3Fx=1", r.URL.EscapedPath())
		_ = json.NewEncoder(w).Encode(testRecord())
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.GetByReference(context.Background(), "INV/2024 0042?x=1")
	require.NoError(t, err)
}

func TestClient_GetByReferenceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.GetByReference(context.Background(), "MISSING")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestClient_CheckInRemoteRejection(t *testing.T) {
	latest := testRecord()
	checkedIn := time.Date(2024, 1, 10, 10, 5, 0, 0, time.UTC)
	latest.CheckedInAt = &checkedIn

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":      "already checked in",
			"invitation": latest,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.CheckIn(context.Background(), "INV-2024-0007", "")

	var remote *service.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusConflict, remote.StatusCode)
	assert.Equal(t, "already checked in", remote.Message)
	require.NotNil(t, remote.Latest)
	assert.NotNil(t, remote.Latest.CheckedInAt)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.GetByReference(context.Background(), "INV-2024-0007")

	var transport *service.TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestClient_CheckInSuccess(t *testing.T) {
	updated := testRecord()
	checkedIn := time.Date(2024, 1, 10, 10, 30, 0, 0, time.UTC)
	updated.CheckedInAt = &checkedIn

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/invitations/by-number/INV-2024-0007/check-in", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "visitor badge 12", body["notes"])

		_ = json.NewEncoder(w).Encode(updated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	got, err := c.CheckIn(context.Background(), "INV-2024-0007", "visitor badge 12")
	require.NoError(t, err)
	assert.NotNil(t, got.CheckedInAt)
}

func TestClient_ListActive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "APPROVED", r.URL.Query().Get("status"))
		assert.Equal(t, "2024-01-10", r.URL.Query().Get("date"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"invitations": []domain.InvitationRecord{testRecord()},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	recs, err := c.ListActive(context.Background(), time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "INV-2024-0007", recs[0].InvitationNumber)
}
