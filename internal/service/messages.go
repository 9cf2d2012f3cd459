package service

import (
	"fmt"

	"visitdesk-station/internal/domain"
)

const messageTimeLayout = "Jan 2, 2006 15:04 MST"

// message renders the operator-facing text for a reason code. This is
// the single place verdict wording and window timestamps are produced;
// call sites must not recompute them.
func (e *Evaluator) message(rec *domain.InvitationRecord, reason domain.ReasonCode) string {
	switch reason {
	case domain.ReasonNone:
		return fmt.Sprintf("Invitation %s is ready for check-in.", rec.InvitationNumber)
	case domain.ReasonTooEarly:
		return fmt.Sprintf("Check-in opens at %s (visit starts %s).",
			e.EarlyWindowStart(rec).Format(messageTimeLayout),
			rec.ScheduledStartTime.Format(messageTimeLayout))
	case domain.ReasonExpired:
		return fmt.Sprintf("This invitation expired at %s (visit ended %s).",
			e.LateWindowEnd(rec).Format(messageTimeLayout),
			rec.ScheduledEndTime.Format(messageTimeLayout))
	case domain.ReasonNotApproved:
		return fmt.Sprintf("Invitation %s is not approved (current status: %s).",
			rec.InvitationNumber, rec.Status)
	case domain.ReasonAlreadyCheckedIn:
		return fmt.Sprintf("Visitor already checked in at %s.",
			rec.CheckedInAt.Format(messageTimeLayout))
	case domain.ReasonVisitCompleted:
		return fmt.Sprintf("Visit already completed; visitor checked out at %s.",
			rec.CheckedOutAt.Format(messageTimeLayout))
	case domain.ReasonEarlyArrival:
		return fmt.Sprintf("Visitor is early; the visit is scheduled to start at %s.",
			rec.ScheduledStartTime.Format(messageTimeLayout))
	case domain.ReasonLateArrival:
		return fmt.Sprintf("Visitor is late; the visit was scheduled to end at %s.",
			rec.ScheduledEndTime.Format(messageTimeLayout))
	default:
		return ""
	}
}
