package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/error/apperror"
)

func TestValidateEntity(t *testing.T) {
	v := apperror.NewValidator()

	err := validateEntity(v, models.Repair{Property: "Flat 1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationSkipped)
	assert.Equal(t, []string{"notes"}, MissingFields(err))

	wrapped := fmt.Errorf("create repair: %w", err)
	assert.Equal(t, []string{"notes"}, MissingFields(wrapped))

	err = validateEntity(v, models.Certificate{
		Property: "Flat 1", Type: "Asbestos",
		Issued: models.NewDate(2024, 1, 1), Expiry: models.NewDate(2025, 1, 1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotEmpty(t, apperror.CustomValidationError(err))

	assert.NoError(t, validateEntity(v, models.Repair{Property: "Flat 1", Notes: "Leak"}))
	assert.Nil(t, MissingFields(errors.New("other")))
}
