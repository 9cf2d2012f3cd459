package service

import (
	"context"
	"time"

	"visitdesk-station/internal/domain"
)

// InvitationLookup is the read side of the remote invitation service.
type InvitationLookup interface {
	GetByReference(ctx context.Context, reference string) (*domain.InvitationRecord, error)
	ListActive(ctx context.Context, day time.Time) ([]domain.InvitationRecord, error)
}

// InvitationMutation is the write side: both transitions are applied by
// the remote service, which returns the refreshed record.
type InvitationMutation interface {
	CheckIn(ctx context.Context, invitationNumber, notes string) (*domain.InvitationRecord, error)
	CheckOut(ctx context.Context, invitationID int32, notes string) (*domain.InvitationRecord, error)
}

// NotificationService tells the host their visitor has arrived.
type NotificationService interface {
	SendArrivalNotification(ctx context.Context, rec *domain.InvitationRecord) error
}

// CheckInService drives a scanned or typed invitation reference through
// lookup, eligibility evaluation, and the confirmed transition.
type CheckInService interface {
	Resolve(ctx context.Context, reference string) (*domain.InvitationRecord, error)
	Evaluate(rec *domain.InvitationRecord, now time.Time) (domain.EligibilityVerdict, error)
	Scan(ctx context.Context, reference string, mode domain.OperatorMode) (*domain.ScanResult, error)
	Confirm(ctx context.Context, rec *domain.InvitationRecord, notes string, mode domain.OperatorMode) (*domain.CheckInResult, error)
	CheckOut(ctx context.Context, rec *domain.InvitationRecord, notes string) (*domain.CheckInResult, error)
	Reset()
}
