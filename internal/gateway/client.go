// Package gateway is the HTTP client for the remote invitation service.
// It implements the lookup and mutation collaborators the check-in
// service is built against, normalizing HTTP failures into the typed
// errors the rest of the station distinguishes on.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"visitdesk-station/internal/domain"
	"visitdesk-station/internal/logger"
	"visitdesk-station/internal/service"
)

const serviceName = "invitation-api"

type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

func NewClient(baseURL, apiToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		http:     &http.Client{Timeout: timeout},
	}
}

// errorBody is the invitation service's error envelope. Rejections that
// raced another operator include the server's current record.
type errorBody struct {
	Error      string                   `json:"error"`
	Invitation *domain.InvitationRecord `json:"invitation,omitempty"`
}

func (c *Client) GetByReference(ctx context.Context, reference string) (*domain.InvitationRecord, error) {
	var rec domain.InvitationRecord
	// Scan payloads are attacker-typeable; escape before they touch the
	// path so stray separators cannot address a different resource.
	path := fmt.Sprintf("/api/v1/invitations/by-number/%s", url.PathEscape(reference))
	if err := c.do(ctx, http.MethodGet, path, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) ListActive(ctx context.Context, day time.Time) ([]domain.InvitationRecord, error) {
	var out struct {
		Invitations []domain.InvitationRecord `json:"invitations"`
	}
	path := fmt.Sprintf("/api/v1/invitations?status=APPROVED&date=%s", day.Format("2006-01-02"))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Invitations, nil
}

func (c *Client) CheckIn(ctx context.Context, invitationNumber, notes string) (*domain.InvitationRecord, error) {
	var rec domain.InvitationRecord
	path := fmt.Sprintf("/api/v1/invitations/by-number/%s/check-in", url.PathEscape(invitationNumber))
	body := map[string]string{"notes": notes}
	if err := c.do(ctx, http.MethodPost, path, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) CheckOut(ctx context.Context, invitationID int32, notes string) (*domain.InvitationRecord, error) {
	var rec domain.InvitationRecord
	path := fmt.Sprintf("/api/v1/invitations/%d/check-out", invitationID)
	body := map[string]string{"notes": notes}
	if err := c.do(ctx, http.MethodPost, path, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path
	logger.ExternalServiceCall(serviceName, op)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		terr := &service.TransportError{Op: op, Err: err}
		logger.ExternalServiceResult(serviceName, op, terr)
		return terr
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		logger.ExternalServiceResult(serviceName, op, service.ErrNotFound)
		return service.ErrNotFound
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(resp.Body)
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		rerr := &service.RemoteError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    eb.Error,
			Latest:     eb.Invitation,
		}
		logger.ExternalServiceResult(serviceName, op, rerr, "status", resp.StatusCode)
		return rerr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			terr := &service.TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
			logger.ExternalServiceResult(serviceName, op, terr)
			return terr
		}
	}

	logger.ExternalServiceResult(serviceName, op, nil, "status", resp.StatusCode)
	return nil
}
