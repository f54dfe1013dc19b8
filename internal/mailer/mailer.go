// Package mailer sends transactional mail for the password-reset flow.
// Delivery is best-effort: callers dispatch in a goroutine and log failures
// without failing the triggering request.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer delivers the two password-reset messages.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
	SendPasswordChanged(to string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string // host:port
	auth smtp.Auth
	from string
}

// NewSMTP creates a mailer for the given relay. user may be empty for
// unauthenticated relays (local dev mailcatchers).
func NewSMTP(host, port, user, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}
	return &SMTPMailer{
		addr: host + ":" + port,
		auth: auth,
		from: from,
	}
}

// SendPasswordReset mails the reset link to the user.
func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf("You are receiving this because you (or someone else) requested a password reset for your account.\r\n\r\n"+
		"Click the following link, or paste it into your browser, to complete the process:\r\n\r\n%s\r\n\r\n"+
		"If you did not request this, ignore this email and your password will remain unchanged.\r\n", resetURL)
	return m.send(to, "Password Reset Request", body)
}

// SendPasswordChanged mails the confirmation after a successful reset.
func (m *SMTPMailer) SendPasswordChanged(to string) error {
	body := fmt.Sprintf("Hello,\r\n\r\nThis is a confirmation that the password for your account %s has just been changed.\r\n", to)
	return m.send(to, "Your password has been changed", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// LogMailer logs instead of sending. Used in development when no SMTP relay
// is configured — the reset link lands in the server log.
type LogMailer struct{}

// SendPasswordReset logs the reset link.
func (LogMailer) SendPasswordReset(to, resetURL string) error {
	slog.Info("password reset mail (log only)", "to", to, "url", resetURL)
	return nil
}

// SendPasswordChanged logs the confirmation.
func (LogMailer) SendPasswordChanged(to string) error {
	slog.Info("password changed mail (log only)", "to", to)
	return nil
}
