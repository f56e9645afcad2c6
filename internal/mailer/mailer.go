package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer delivers outgoing notifications. Delivery is best-effort: callers
// log failures and carry on, they never roll back on a mail error.
type Mailer interface {
	SendInvitation(to, companyName, acceptURL string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer for the given SMTP relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendInvitation sends the single-use acceptance link for a pending invitation.
func (m *SMTPMailer) SendInvitation(to, companyName, acceptURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("You have been invited to join %s on FieldNote", companyName))
	msg.SetBody("text/plain", fmt.Sprintf(
		"%s has invited you to join FieldNote.\nFollow the link below to complete your registration.\n\n%s\n",
		companyName, acceptURL,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send invitation mail: %w", err)
	}
	return nil
}

// Noop discards all mail. Used when SMTP is not configured and in tests.
type Noop struct{}

func (Noop) SendInvitation(to, companyName, acceptURL string) error {
	return nil
}
