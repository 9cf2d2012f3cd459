package service

import (
	"strings"
	"time"

	"visitdesk-station/internal/domain"
)

// Default grace periods around the scheduled window. Kept in one place;
// every call site that needs the windows goes through the evaluator.
const (
	DefaultEarlyGrace = 2 * time.Hour
	DefaultLateGrace  = 24 * time.Hour
)

// Evaluator decides whether an invitation may be checked in at a given
// instant. It is pure: no clock reads, no I/O, no mutation. Callers pass
// "now" explicitly so tests can pin time exactly.
type Evaluator struct {
	earlyGrace time.Duration
	lateGrace  time.Duration
}

// NewEvaluator builds an evaluator with the given grace periods.
// Non-positive values fall back to the defaults.
func NewEvaluator(earlyGrace, lateGrace time.Duration) *Evaluator {
	if earlyGrace <= 0 {
		earlyGrace = DefaultEarlyGrace
	}
	if lateGrace <= 0 {
		lateGrace = DefaultLateGrace
	}
	return &Evaluator{earlyGrace: earlyGrace, lateGrace: lateGrace}
}

// EarlyWindowStart is the first instant at which check-in is permitted.
func (e *Evaluator) EarlyWindowStart(rec *domain.InvitationRecord) time.Time {
	return rec.ScheduledStartTime.Add(-e.earlyGrace)
}

// LateWindowEnd is the last instant at which check-in is permitted.
func (e *Evaluator) LateWindowEnd(rec *domain.InvitationRecord) time.Time {
	return rec.ScheduledEndTime.Add(e.lateGrace)
}

// Evaluate maps (record, now) to a verdict. Checks run in a fixed
// priority order: checked-in state first, then the timing windows, then
// approval status. First match wins.
func (e *Evaluator) Evaluate(rec *domain.InvitationRecord, now time.Time) (domain.EligibilityVerdict, error) {
	if rec == nil {
		return domain.EligibilityVerdict{}, &InvalidRecordError{Field: "record"}
	}
	if rec.ScheduledStartTime.IsZero() {
		return domain.EligibilityVerdict{}, &InvalidRecordError{Field: "scheduled_start_time"}
	}
	if rec.ScheduledEndTime.IsZero() {
		return domain.EligibilityVerdict{}, &InvalidRecordError{Field: "scheduled_end_time"}
	}
	if rec.Status == "" {
		return domain.EligibilityVerdict{}, &InvalidRecordError{Field: "status"}
	}

	if rec.CheckedInAt != nil && rec.CheckedOutAt != nil {
		return e.verdict(rec, domain.DecisionBlocked, domain.ReasonVisitCompleted), nil
	}
	if rec.CheckedInAt != nil {
		return e.verdict(rec, domain.DecisionBlocked, domain.ReasonAlreadyCheckedIn), nil
	}

	earlyStart := e.EarlyWindowStart(rec)
	lateEnd := e.LateWindowEnd(rec)

	if now.Before(earlyStart) {
		return e.verdict(rec, domain.DecisionBlocked, domain.ReasonTooEarly), nil
	}
	if now.After(lateEnd) {
		return e.verdict(rec, domain.DecisionBlocked, domain.ReasonExpired), nil
	}
	// Status casing is inconsistent across upstream services; normalize
	// the comparison here once.
	if !strings.EqualFold(string(rec.Status), string(domain.InvitationStatusApproved)) {
		return e.verdict(rec, domain.DecisionBlocked, domain.ReasonNotApproved), nil
	}
	if now.Before(rec.ScheduledStartTime) {
		return e.verdict(rec, domain.DecisionAllowedWithWarning, domain.ReasonEarlyArrival), nil
	}
	if now.After(rec.ScheduledEndTime) {
		return e.verdict(rec, domain.DecisionAllowedWithWarning, domain.ReasonLateArrival), nil
	}
	return e.verdict(rec, domain.DecisionAllowed, domain.ReasonNone), nil
}

func (e *Evaluator) verdict(rec *domain.InvitationRecord, d domain.Decision, r domain.ReasonCode) domain.EligibilityVerdict {
	return domain.EligibilityVerdict{
		Decision: d,
		Reason:   r,
		Message:  e.message(rec, r),
	}
}
