package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealsub/internal/shared/errors"
)

type sampleRequest struct {
	Plan  string `json:"plan" validate:"required,oneof=weekly"`
	Notes string `json:"notes" validate:"max=5"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sampleRequest{Plan: "weekly"}))

	err := ValidateStruct(sampleRequest{Notes: "too long"})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "plan is required")
	assert.Contains(t, appErr.Details, "notes must be at most 5 characters long")
}
