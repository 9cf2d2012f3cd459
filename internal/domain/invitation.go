package domain

import "time"

type InvitationStatus string

const (
	InvitationStatusDraft       InvitationStatus = "DRAFT"
	InvitationStatusSubmitted   InvitationStatus = "SUBMITTED"
	InvitationStatusUnderReview InvitationStatus = "UNDER_REVIEW"
	InvitationStatusApproved    InvitationStatus = "APPROVED"
	InvitationStatusRejected    InvitationStatus = "REJECTED"
	InvitationStatusCancelled   InvitationStatus = "CANCELLED"
	InvitationStatusExpired     InvitationStatus = "EXPIRED"
	InvitationStatusActive      InvitationStatus = "ACTIVE"
	InvitationStatusCompleted   InvitationStatus = "COMPLETED"
)

// Visitor carries display-only contact details for the person the
// invitation admits. The station never validates these fields.
type Visitor struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Company     string `json:"company,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func (v Visitor) FullName() string {
	if v.FirstName == "" {
		return v.LastName
	}
	if v.LastName == "" {
		return v.FirstName
	}
	return v.FirstName + " " + v.LastName
}

// Host is the employee receiving the visitor. Email is used for arrival
// notifications; the rest is display-only.
type Host struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}

// InvitationRecord is one scheduled visit as last fetched from the
// invitation service. Records are created and mutated server-side; the
// station only reads them and requests the check-in and check-out
// transitions.
type InvitationRecord struct {
	ID                 int32            `json:"id"`
	InvitationNumber   string           `json:"invitation_number"`
	Status             InvitationStatus `json:"status"`
	ScheduledStartTime time.Time        `json:"scheduled_start_time"`
	ScheduledEndTime   time.Time        `json:"scheduled_end_time"`
	CheckedInAt        *time.Time       `json:"checked_in_at,omitempty"`
	CheckedOutAt       *time.Time       `json:"checked_out_at,omitempty"`
	Visitor            Visitor          `json:"visitor"`
	Host               Host             `json:"host"`
	Location           string           `json:"location,omitempty"`
	VisitPurpose       string           `json:"visit_purpose,omitempty"`
	CreatedOn          time.Time        `json:"created_on"`
	UpdatedOn          time.Time        `json:"updated_on"`
}
