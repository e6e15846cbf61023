package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleBody struct {
	Email string   `json:"userEmail" validate:"required,email"`
	Slots []string `json:"slots" validate:"required,min=1"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	errs := ValidateStruct(sampleBody{Email: "not-an-email"})

	assert.Equal(t, "Invalid email format", errs["userEmail"])
	assert.Equal(t, "This field is required", errs["slots"])
}

func TestValidateStructValid(t *testing.T) {
	errs := ValidateStruct(sampleBody{Email: "a@x.com", Slots: []string{"09:00"}})
	assert.Empty(t, errs)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
}

func TestFormatValidationErrors(t *testing.T) {
	got := FormatValidationErrors(map[string]string{
		"slots":     "This field is required",
		"userEmail": "Invalid email format",
	})
	assert.Equal(t, "slots: This field is required; userEmail: Invalid email format", got)
}
