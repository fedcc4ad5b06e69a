// Package apperror turns validator errors into field lists for API responses.
package apperror

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
)

var (
	errRequired    = errors.New("is required")
	errInvalidType = errors.New("must be one of EICR, Gas Safety, EPC, License")
)

var customErrors = map[string]error{
	"required":                  errRequired,
	"Certificate.Type.certtype": errInvalidType,
}

// NewValidator returns a validator that reports json field names and understands the
// document field types: an unset Date or Amount fails "required".
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch x := field.Interface().(type) {
		case models.Date:
			if x.Valid() {
				return x.Time
			}
		case models.Amount:
			if x.Valid {
				return x.Value.String()
			}
		}
		return nil
	}, models.Date{}, models.Amount{})
	_ = v.RegisterValidation("certtype", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseCertificateType(fl.Field().String())
		return ok
	})
	return v
}

// MissingFields lists the json names of fields that failed "required", in struct order.
func MissingFields(err error) []string {
	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return nil
	}
	var out []string
	for _, e := range validationErr {
		if e.Tag() == "required" {
			out = append(out, e.Field())
		}
	}
	return out
}

// OnlyMissing reports whether every failure of err is a "required" failure.
func OnlyMissing(err error) bool {
	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return false
	}
	for _, e := range validationErr {
		if e.Tag() != "required" {
			return false
		}
	}
	return true
}

// CustomValidationError converts validator errors into a list of {field: message}.
func CustomValidationError(err error) []map[string]string {
	errList := make([]map[string]string, 0)

	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return errList
	}
	for _, e := range validationErr {
		errMsg := fmt.Sprintf("%s is invalid", e.Field())
		if v, ok := customErrors[e.StructNamespace()+"."+e.Tag()]; ok {
			errMsg = v.Error()
		} else if v, ok := customErrors[e.Tag()]; ok {
			errMsg = v.Error()
		}
		errList = append(errList, map[string]string{e.Field(): errMsg})
	}
	return errList
}
