// Package email implements the EmailSender port over plain SMTP.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"swiftparcel/internal/core/ports"
)

// Config carries the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender delivers transactional email through an SMTP relay. Callers treat
// delivery as best-effort; a failed send never fails the operation that
// triggered it.
type Sender struct {
	config Config
	logger *slog.Logger
}

var _ ports.EmailSender = (*Sender)(nil)

// NewSender creates an SMTP email sender.
func NewSender(config Config, logger *slog.Logger) *Sender {
	return &Sender{
		config: config,
		logger: logger,
	}
}

// Send delivers a single plain-text message.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := strings.Join([]string{
		"From: " + s.config.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	s.logger.Debug("email sent",
		slog.String("to", to),
		slog.String("subject", subject))

	return nil
}
