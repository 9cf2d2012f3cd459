package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"visitdesk-station/internal/domain"
	"visitdesk-station/internal/logger"
)

// DefaultScanCooldown is the quiet period after an operation completes
// during which re-scans of the same reference are ignored.
const DefaultScanCooldown = 3 * time.Second

// InvitationCache receives refreshed records after confirmed transitions.
type InvitationCache interface {
	Put(rec domain.InvitationRecord)
}

type checkInService struct {
	lookup    InvitationLookup
	mutation  InvitationMutation
	notifier  NotificationService
	cache     InvitationCache
	evaluator *Evaluator
	now       func() time.Time
	cooldown  time.Duration

	// Single global slot, not a per-reference map: one scanner feeds one
	// station, and the slot exists to stop a QR code sitting in camera
	// view from re-triggering a completed check-in. inFlight holds the
	// slot closed for the whole network round-trip; the timestamp only
	// governs the quiet period after the operation completes.
	mu            sync.Mutex
	lastReference string
	inFlight      bool
	cooldownUntil time.Time
}

// NewCheckInService wires the lifecycle controller. notifier and cache
// may be nil; clock may be nil to use the wall clock.
func NewCheckInService(
	lookup InvitationLookup,
	mutation InvitationMutation,
	notifier NotificationService,
	cache InvitationCache,
	evaluator *Evaluator,
	clock func() time.Time,
	cooldown time.Duration,
) CheckInService {
	if clock == nil {
		clock = time.Now
	}
	if cooldown <= 0 {
		cooldown = DefaultScanCooldown
	}
	return &checkInService{
		lookup:    lookup,
		mutation:  mutation,
		notifier:  notifier,
		cache:     cache,
		evaluator: evaluator,
		now:       clock,
		cooldown:  cooldown,
	}
}

func (s *checkInService) Resolve(ctx context.Context, reference string) (*domain.InvitationRecord, error) {
	rec, err := s.lookup.GetByReference(ctx, reference)
	if err != nil {
		return nil, normalizeError("resolve", err)
	}
	return rec, nil
}

func (s *checkInService) Evaluate(rec *domain.InvitationRecord, now time.Time) (domain.EligibilityVerdict, error) {
	return s.evaluator.Evaluate(rec, now)
}

func (s *checkInService) Scan(ctx context.Context, reference string, mode domain.OperatorMode) (*domain.ScanResult, error) {
	// The slot must be armed before the first await so a re-entrant scan
	// arriving during the network round-trip is rejected, not raced. A
	// timestamp alone is not enough: a lookup slower than the quiet
	// period would reopen the slot mid-flight, so the slot stays closed
	// until the operation completes and the quiet period then elapses.
	s.mu.Lock()
	now := s.now()
	if reference == s.lastReference && (s.inFlight || now.Before(s.cooldownUntil)) {
		s.mu.Unlock()
		return nil, ErrDuplicateScan
	}
	s.lastReference = reference
	s.inFlight = true
	s.mu.Unlock()

	// Quiet period restarts when the operation finishes, success or not.
	defer s.touchCooldown(reference)

	rec, err := s.Resolve(ctx, reference)
	if err != nil {
		return nil, err
	}

	verdict, err := s.evaluator.Evaluate(rec, s.now())
	if err != nil {
		return nil, err
	}

	out := &domain.ScanResult{Invitation: rec, Verdict: verdict}
	if mode == domain.OperatorModeAuto && !verdict.Blocked() {
		result, err := s.Confirm(ctx, rec, "", mode)
		if err != nil {
			return nil, err
		}
		out.Invitation = result.Invitation
		out.Result = result
	}
	return out, nil
}

func (s *checkInService) Confirm(ctx context.Context, rec *domain.InvitationRecord, notes string, mode domain.OperatorMode) (*domain.CheckInResult, error) {
	verdict, err := s.evaluator.Evaluate(rec, s.now())
	if err != nil {
		return nil, err
	}
	// The operator may override a warning but never a block. The UI must
	// not offer confirm on a blocked verdict; re-validating here catches
	// callers that do anyway.
	if verdict.Blocked() {
		return nil, ErrNotEligible
	}

	defer s.touchCooldown(rec.InvitationNumber)

	updated, err := s.mutation.CheckIn(ctx, rec.InvitationNumber, notes)
	if err != nil {
		return nil, normalizeError("check-in", err)
	}

	if s.cache != nil {
		s.cache.Put(*updated)
	}
	if s.notifier != nil {
		if err := s.notifier.SendArrivalNotification(ctx, updated); err != nil {
			logger.Warn("Failed to notify host of arrival",
				"invitation_number", updated.InvitationNumber,
				"host_email", updated.Host.Email,
				"error", err)
		}
	}

	return &domain.CheckInResult{
		AttemptID:  uuid.NewString(),
		Invitation: updated,
		Verdict:    &verdict,
	}, nil
}

func (s *checkInService) CheckOut(ctx context.Context, rec *domain.InvitationRecord, notes string) (*domain.CheckInResult, error) {
	if rec == nil {
		return nil, &InvalidRecordError{Field: "record"}
	}
	if rec.CheckedInAt == nil || rec.CheckedOutAt != nil {
		return nil, ErrNotEligible
	}

	updated, err := s.mutation.CheckOut(ctx, rec.ID, notes)
	if err != nil {
		return nil, normalizeError("check-out", err)
	}

	if s.cache != nil {
		s.cache.Put(*updated)
	}

	return &domain.CheckInResult{
		AttemptID:  uuid.NewString(),
		Invitation: updated,
	}, nil
}

// Reset clears the cooldown slot so a fresh scanner session starts
// clean, e.g. after the kiosk UI is torn down mid-resolution.
func (s *checkInService) Reset() {
	s.mu.Lock()
	s.lastReference = ""
	s.inFlight = false
	s.cooldownUntil = time.Time{}
	s.mu.Unlock()
}

// touchCooldown marks the operation complete and starts the quiet
// period from that instant.
func (s *checkInService) touchCooldown(reference string) {
	s.mu.Lock()
	s.lastReference = reference
	s.inFlight = false
	s.cooldownUntil = s.now().Add(s.cooldown)
	s.mu.Unlock()
}

// normalizeError keeps the typed failures distinguishable and folds
// anything unrecognized into a transport failure.
func normalizeError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return err
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}
