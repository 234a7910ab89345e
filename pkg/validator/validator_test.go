package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentPayload struct {
	Date string `validate:"required,futuredate"`
}

func TestFutureDate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"future instant passes", time.Now().Add(24 * time.Hour).Format(time.RFC3339), false},
		{"past instant fails", time.Now().Add(-24 * time.Hour).Format(time.RFC3339), true},
		{"date without time fails", "2030-01-15", true},
		{"garbage fails", "next tuesday", true},
		{"empty fails", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&appointmentPayload{Date: tt.date})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&appointmentPayload{Date: "not-a-date"})
	require.Error(t, err)

	formatted := v.FormatValidationErrors(err)
	assert.Contains(t, formatted["Date"], "future instant")
}

type rolePayload struct {
	Status string `validate:"required,oneof=SCHEDULED ATTENDED MISSED"`
}

func TestOneOfMessage(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&rolePayload{Status: "CANCELLED"})
	require.Error(t, err)

	formatted := v.FormatValidationErrors(err)
	assert.Equal(t, "Status must be one of: SCHEDULED ATTENDED MISSED", formatted["Status"])
}
