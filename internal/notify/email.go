// Package notify delivers signup confirmation emails.
package notify

import (
	"context"
	"fmt"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
	HTML    string
}

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

func (c SendGridConfig) IsConfigured() bool {
	return c.APIKey != "" && c.FromEmail != ""
}

// sendClient is the subset of *sendgrid.Client used here.
type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type SendGridSender struct {
	client    sendClient
	fromEmail string
	fromName  string
	logger    *log.Logger
}

// NewSendGridSender returns nil when cfg is not configured so callers can skip
// email delivery with a nil check.
func NewSendGridSender(cfg SendGridConfig, logger *log.Logger) *SendGridSender {
	if !cfg.IsConfigured() {
		return nil
	}
	if logger == nil {
		logger = log.NewLoggerWithJSONOutput()
	}
	if cfg.FromName == "" {
		cfg.FromName = "Sunday Game"
	}

	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)

	html := msg.HTML
	if html == "" {
		html = msg.Body
	}

	response, err := s.client.SendWithContext(ctx, mail.NewSingleEmail(from, msg.Subject, to, msg.Body, html))
	if err != nil {
		logger.Error("SendGrid send failed", "error", err)
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}

	if response.StatusCode >= 300 {
		logger.Error("SendGrid rejected message", "status", response.StatusCode, "body", response.Body)
		return fmt.Errorf("notify: sendgrid status %d", response.StatusCode)
	}

	logger.Info("Confirmation email sent", "status", response.StatusCode)
	return nil
}
