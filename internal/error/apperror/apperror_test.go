package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
)

func TestMissingFields_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Struct(models.Certificate{Type: models.CertificateEPC, Issued: models.NewDate(2024, 1, 1)})
	require.Error(t, err)

	assert.Equal(t, []string{"property", "expiry"}, MissingFields(err))
	assert.True(t, OnlyMissing(err))
}

func TestValidator_CertificateType(t *testing.T) {
	v := NewValidator()

	err := v.Struct(models.Certificate{
		Property: "Flat 1",
		Type:     "Fire Risk",
		Issued:   models.NewDate(2024, 1, 1),
		Expiry:   models.NewDate(2025, 1, 1),
	})
	require.Error(t, err)
	assert.False(t, OnlyMissing(err))
	assert.Empty(t, MissingFields(err))
	assert.Equal(t, []map[string]string{{"type": errInvalidType.Error()}}, CustomValidationError(err))
}

func TestValidator_ValidEntities(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(models.Property{Name: "Flat 1"}))
	assert.NoError(t, v.Struct(models.Repair{Property: "Flat 1", Notes: "Leak"}))
	assert.NoError(t, v.Struct(models.Task{Task: "Call", AssignedTo: "ann@example.com"}))
	assert.NoError(t, v.Struct(models.Contractor{Name: "Bob"}))
}

func TestCustomValidationError(t *testing.T) {
	v := NewValidator()

	err := v.Struct(models.Repair{})
	require.Error(t, err)
	assert.Equal(t, []map[string]string{
		{"property": "is required"},
		{"notes": "is required"},
	}, CustomValidationError(err))

	assert.Empty(t, CustomValidationError(errors.New("plain")))
	assert.Nil(t, MissingFields(errors.New("plain")))
}
