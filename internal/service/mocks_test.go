package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"visitdesk-station/internal/domain"
)

// MockLookup
type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) GetByReference(ctx context.Context, reference string) (*domain.InvitationRecord, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvitationRecord), args.Error(1)
}

func (m *MockLookup) ListActive(ctx context.Context, day time.Time) ([]domain.InvitationRecord, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvitationRecord), args.Error(1)
}

// MockMutation
type MockMutation struct {
	mock.Mock
}

func (m *MockMutation) CheckIn(ctx context.Context, invitationNumber, notes string) (*domain.InvitationRecord, error) {
	args := m.Called(ctx, invitationNumber, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvitationRecord), args.Error(1)
}

func (m *MockMutation) CheckOut(ctx context.Context, invitationID int32, notes string) (*domain.InvitationRecord, error) {
	args := m.Called(ctx, invitationID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvitationRecord), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendArrivalNotification(ctx context.Context, rec *domain.InvitationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// MockCache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Put(rec domain.InvitationRecord) {
	m.Called(rec)
}

// fakeClock lets tests move time explicitly.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
