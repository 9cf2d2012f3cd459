package domain

type Decision string

const (
	DecisionAllowed            Decision = "ALLOWED"
	DecisionAllowedWithWarning Decision = "ALLOWED_WITH_WARNING"
	DecisionBlocked            Decision = "BLOCKED"
)

type ReasonCode string

const (
	ReasonNone             ReasonCode = "NONE"
	ReasonTooEarly         ReasonCode = "TOO_EARLY"
	ReasonExpired          ReasonCode = "EXPIRED"
	ReasonNotApproved      ReasonCode = "NOT_APPROVED"
	ReasonAlreadyCheckedIn ReasonCode = "ALREADY_CHECKED_IN"
	ReasonVisitCompleted   ReasonCode = "VISIT_COMPLETED"
	ReasonEarlyArrival     ReasonCode = "EARLY_ARRIVAL"
	ReasonLateArrival      ReasonCode = "LATE_ARRIVAL"
)

// EligibilityVerdict is the evaluator's answer for one (record, now) pair.
// It is a value object, never persisted.
type EligibilityVerdict struct {
	Decision Decision   `json:"decision"`
	Reason   ReasonCode `json:"reason"`
	Message  string     `json:"message"`
}

func (v EligibilityVerdict) Blocked() bool {
	return v.Decision == DecisionBlocked
}
