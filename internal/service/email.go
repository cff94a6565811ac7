package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/AminePrince/bmsbackend/internal/config"
	"github.com/AminePrince/bmsbackend/internal/logger"
)

type sendGridEmailService struct {
	cfg config.EmailConfig
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &sendGridEmailService{cfg: cfg}
}

// SendDeadlineAlert mails one deadline alert. When email delivery is
// disabled in config the call is a logged no-op; the stored notification
// remains the source of truth either way.
func (s *sendGridEmailService) SendDeadlineAlert(ctx context.Context, toEmail, toName, subject, message string) error {
	if !s.cfg.Enabled {
		logger.Debug("Email delivery disabled, skipping alert", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	htmlContent := fmt.Sprintf("<p>%s</p>", message)
	msg := mail.NewSingleEmail(from, subject, recipient, message, htmlContent)

	client := sendgrid.NewSendClient(s.cfg.APIKey)
	response, err := client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.Info("Deadline alert sent", "to", toEmail, "subject", subject)
	return nil
}
