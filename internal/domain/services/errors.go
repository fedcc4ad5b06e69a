package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Urbanbaseprops/property-manager/internal/domain/links"
	"github.com/Urbanbaseprops/property-manager/internal/error/apperror"
)

var (
	// ErrAuthFailed covers unknown users, wrong passwords and disabled accounts alike.
	ErrAuthFailed = errors.New("failed to log in")
	// ErrSessionInvalid is returned for missing, expired, malformed or revoked tokens.
	ErrSessionInvalid = errors.New("session is not valid")
	// ErrValidationSkipped marks a create that was not written because required fields are empty.
	ErrValidationSkipped = errors.New("required fields missing, nothing written")
	// ErrInvalidInput marks a field value that cannot be stored.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserExists is returned when registering an email twice.
	ErrUserExists = errors.New("user already exists")
	// ErrNoPhoneNumber is returned when contractor details hold no UK mobile number.
	ErrNoPhoneNumber = links.ErrNoPhoneNumber
)

// ValidationSkippedError carries the names of the empty required fields.
type ValidationSkippedError struct {
	Missing []string
}

func (e *ValidationSkippedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationSkipped, strings.Join(e.Missing, ", "))
}

func (e *ValidationSkippedError) Is(target error) bool {
	return target == ErrValidationSkipped
}

// MissingFields returns the empty required fields of a skipped write.
func MissingFields(err error) []string {
	var skipped *ValidationSkippedError
	if errors.As(err, &skipped) {
		return skipped.Missing
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// validateEntity splits validator failures into skipped writes (only required fields
// are empty) and invalid input (anything else).
func validateEntity(v *validator.Validate, entity interface{}) error {
	err := v.Struct(entity)
	if err == nil {
		return nil
	}
	if apperror.OnlyMissing(err) {
		return &ValidationSkippedError{Missing: apperror.MissingFields(err)}
	}
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
