// Package mailer sends password-reset mail over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP connection details.
type Config struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Mailer sends transactional mail.
type Mailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

// New creates a Mailer from the SMTP config.
func New(cfg Config) *Mailer {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
	}
}

// SendPasswordReset mails the reset link to the given address.
func (m *Mailer) SendPasswordReset(to, resetLink string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello,\n\nYou are receiving this email because a password reset request was made for your account.\n\n"+
			"Please click the link below to reset your password:\n\n%s\n\n"+
			"If you did not request this, you can safely ignore this email.\n\n"+
			"Best regards,\nProduct Management App Team", resetLink))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send password reset mail: %w", err)
	}
	return nil
}
