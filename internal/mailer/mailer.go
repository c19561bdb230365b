// Package mailer delivers transactional email for the Count Coins API.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"countcoins/internal/config"
	"countcoins/internal/logger"
)

// Mailer delivers account email. The auth service depends on this interface
// so tests and development can substitute delivery.
type Mailer interface {
	SendPasswordReset(to, resetToken string) error
}

// New returns an SMTP-backed mailer when SMTP is configured, and a mailer
// that logs reset links otherwise (development behavior).
func New(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return &logMailer{baseURL: cfg.AppBaseURL}
	}
	return &smtpMailer{cfg: cfg}
}

// smtpMailer sends real email over SMTP.
type smtpMailer struct {
	cfg *config.Config
}

func (s *smtpMailer) SendPasswordReset(to, resetToken string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Reset your Count Coins password"

	body := fmt.Sprintf(
		"We received a request to reset your password.\n\n"+
			"Open the link below within 15 minutes to choose a new password:\n"+
			"%s/reset-password?token=%s\n\n"+
			"If you did not request a reset, you can ignore this email.\n",
		s.cfg.AppBaseURL, resetToken,
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	logger.Get().Infow("password reset email sent", "to", to)
	return nil
}

// logMailer logs the reset link instead of sending email.
type logMailer struct {
	baseURL string
}

func (l *logMailer) SendPasswordReset(to, resetToken string) error {
	logger.Get().Infow("password reset requested (SMTP not configured, logging link)",
		"to", to,
		"reset_link", fmt.Sprintf("%s/reset-password?token=%s", l.baseURL, resetToken),
	)
	return nil
}
