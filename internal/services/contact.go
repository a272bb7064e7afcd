package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/gateway"
	"github.com/exoshivam/folio/internal/logging"
	"github.com/exoshivam/folio/internal/models"
)

const contactFailedMessage = "Failed to send message"

type ContactService interface {
	Submit(ctx context.Context, msg models.ContactMessage) error
}

type contactService struct {
	client gateway.Client
	log    logging.Logger
}

func NewContactService(client gateway.Client, log logging.Logger) ContactService {
	return &contactService{client: client, log: log}
}

// ValidateContact reports the first missing field in form order.
func ValidateContact(msg models.ContactMessage) error {
	fields := []struct{ name, value, label string }{
		{"name", msg.Name, "Name"},
		{"email", msg.Email, "Email"},
		{"subject", msg.Subject, "Subject"},
		{"message", msg.Message, "Message"},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return common.NewValidationError(f.name, f.label+" is required")
		}
	}
	return nil
}

func (c *contactService) Submit(ctx context.Context, msg models.ContactMessage) error {
	if err := ValidateContact(msg); err != nil {
		return err
	}
	if err := c.client.SubmitContact(ctx, msg); err != nil {
		c.log.Warn(ctx, "contact submission failed", "error", err)
		return fmt.Errorf("submit contact form: %w", err)
	}
	return nil
}

// ContactErrorMessage is the banner text for a failed submission.
func ContactErrorMessage(err error) string {
	return common.PublicMessage(err, contactFailedMessage)
}
