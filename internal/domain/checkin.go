package domain

type OperatorMode string

const (
	OperatorModeManual OperatorMode = "MANUAL"
	OperatorModeAuto   OperatorMode = "AUTO"
)

// CheckInResult is the outcome of a confirmed check-in or check-out.
// AttemptID correlates the station-side attempt with log lines and the
// kiosk UI; Invitation is the refreshed record returned by the
// invitation service after the transition was applied.
type CheckInResult struct {
	AttemptID  string              `json:"attempt_id"`
	Invitation *InvitationRecord   `json:"invitation"`
	Verdict    *EligibilityVerdict `json:"verdict,omitempty"`
}

// ScanResult is what a cooldown-gated scan produces. Result is only set
// in auto mode, when the verdict permitted an immediate check-in.
type ScanResult struct {
	Invitation *InvitationRecord  `json:"invitation"`
	Verdict    EligibilityVerdict `json:"verdict"`
	Result     *CheckInResult     `json:"result,omitempty"`
}
