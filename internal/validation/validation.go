// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	tagDecimalPositive = "decimal_positive"

	// NUMERIC(12,2) upper bound
	maxAmount = "9999999999.99"
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error lists every field that failed validation
type Error struct {
	Fields []FieldError `json:"errors"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

// Add appends a field error, useful for rules that need storage lookups
func (e *Error) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil returns nil when no field failed
func (e *Error) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func NewError(field, reason string) *Error {
	e := new(Error)
	e.Add(field, reason)
	return e
}

// AsError extracts a validation error from the chain
func AsError(err error) (*Error, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

type Validator struct {
	validate *validator.Validate
}

// Struct validates s and returns a *Error describing every failed field
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate: %w", err)
	}

	vErr := new(Error)
	for _, fe := range fieldErrs {
		vErr.Add(fe.Field(), reason(fe))
	}

	return vErr
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "hexcolor":
		return "must be a hex color such as #10b981"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "gtefield":
		return "must not be before " + fe.Param()
	case tagDecimalPositive:
		return "must be a positive amount with at most 2 decimals"
	default:
		return "is invalid"
	}
}

// ValidAmount checks s is a positive decimal with at most two fractional digits that fits NUMERIC(12,2)
func ValidAmount(s string) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return false
	}

	if !d.IsPositive() {
		return false
	}

	if !d.Equal(d.Truncate(2)) {
		return false
	}

	return d.LessThanOrEqual(decimal.RequireFromString(maxAmount))
}

func decimalPositive(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	return ValidAmount(field.String())
}

func jsonTagName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// NewValidator builds a validator reporting fields by their json name
func NewValidator() *Validator {
	v := new(Validator)

	v.validate = validator.New(validator.WithRequiredStructEnabled())
	v.validate.RegisterTagNameFunc(jsonTagName)

	if err := v.validate.RegisterValidation(tagDecimalPositive, decimalPositive); err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", tagDecimalPositive, err))
	}

	return v
}
