// Package notify sends host-facing arrival notifications. Delivery
// failures are reported to the caller but never fail the check-in that
// triggered them.
package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"visitdesk-station/internal/domain"
)

const arrivalTimeLayout = "Jan 2, 2006 15:04 MST"

type SendGridNotifier struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridNotifier(apiKey, fromEmail, fromName string) *SendGridNotifier {
	return &SendGridNotifier{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendArrivalNotification emails the host that their visitor has
// checked in at reception.
func (n *SendGridNotifier) SendArrivalNotification(ctx context.Context, rec *domain.InvitationRecord) error {
	if rec.Host.Email == "" {
		return fmt.Errorf("invitation %s has no host email", rec.InvitationNumber)
	}

	visitor := rec.Visitor.FullName()
	subject := fmt.Sprintf("Your visitor %s has arrived", visitor)

	body := fmt.Sprintf("Hello %s,\n\nYour visitor %s", rec.Host.Name, visitor)
	if rec.Visitor.Company != "" {
		body += fmt.Sprintf(" (%s)", rec.Visitor.Company)
	}
	body += " has checked in at reception"
	if rec.Location != "" {
		body += fmt.Sprintf(" (%s)", rec.Location)
	}
	if rec.CheckedInAt != nil {
		body += fmt.Sprintf(" at %s", rec.CheckedInAt.Format(arrivalTimeLayout))
	}
	body += fmt.Sprintf(".\n\nInvitation: %s\n", rec.InvitationNumber)
	if rec.VisitPurpose != "" {
		body += fmt.Sprintf("Purpose: %s\n", rec.VisitPurpose)
	}

	from := mail.NewEmail(n.fromName, n.fromEmail)
	recipient := mail.NewEmail(rec.Host.Name, rec.Host.Email)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send arrival notification: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
