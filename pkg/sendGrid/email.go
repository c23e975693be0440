package sendGrid

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// AlertMailer delivers operational alert mail to the platform team.
type AlertMailer interface {
	SendAlert(ctx context.Context, to, subject, body string) error
}

type alertMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewAlertMailer(apiKey string, fromEmail string, fromName string) AlertMailer {
	return &alertMailer{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// SendAlert implements AlertMailer.
func (a *alertMailer) SendAlert(ctx context.Context, to, subject, body string) error {

	from := mail.NewEmail(a.fromName, a.fromEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", to))
	personalization.Subject = subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", body))

	response, err := a.client.Send(message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send alert email, status code: %d", response.StatusCode)
	}

	return nil
}
