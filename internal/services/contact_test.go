package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/exoshivam/folio/internal/common"
	"github.com/exoshivam/folio/internal/logging"
	"github.com/exoshivam/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateContact_FieldOrder(t *testing.T) {
	tests := []struct {
		name string
		msg  models.ContactMessage
		want string
	}{
		{"all missing", models.ContactMessage{}, "Name is required"},
		{"email", models.ContactMessage{Name: "A"}, "Email is required"},
		{"subject", models.ContactMessage{Name: "A", Email: "a@b.c", Message: "hi"}, "Subject is required"},
		{"blank message", models.ContactMessage{Name: "A", Email: "a@b.c", Subject: "s", Message: " \n"}, "Message is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContact(tt.msg)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Equal(t, tt.want, common.PublicMessage(err, ""))
		})
	}
	require.NoError(t, ValidateContact(models.ContactMessage{Name: "A", Email: "a@b.c", Subject: "s", Message: "m"}))
}

func TestContactSubmit(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	c := NewContactService(fc, logging.Nop())

	require.ErrorIs(t, c.Submit(ctx, models.ContactMessage{}), common.ErrValidation)
	assert.Zero(t, fc.Calls("contact"))

	msg := models.ContactMessage{Name: "A", Email: "a@b.c", Subject: "s", Message: "m"}
	require.NoError(t, c.Submit(ctx, msg))
	assert.Equal(t, []models.ContactMessage{msg}, fc.contacts)
}

func TestContactErrorMessage(t *testing.T) {
	assert.Equal(t, "Rate limited", ContactErrorMessage(&common.ServerError{Status: 429, Message: "Rate limited"}))
	assert.Equal(t, "Failed to send message", ContactErrorMessage(&common.ServerError{Status: 500}))
	assert.Equal(t, "Failed to send message", ContactErrorMessage(fmt.Errorf("%w: offline", common.ErrNetwork)))
}
