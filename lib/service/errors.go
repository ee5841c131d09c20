package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	ErrAssetNotFound     = errors.New("asset not found")
	ErrSerialNumberTaken = errors.New("serial number already exists")
)

const pgUniqueViolation = "23505"

// ValidationError is returned when input breaks a constraint of the asset model.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func newValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := fieldErrors[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "notblank":
		msg = "must not be empty"
	case "max":
		msg = "must be at most " + fe.Param() + " characters"
	case "gt":
		msg = "must be greater than " + fe.Param()
	case "gte":
		msg = "must be greater than or equal to " + fe.Param()
	case "lte":
		msg = "must be less than or equal to " + fe.Param()
	case "oneof":
		msg = "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		msg = "is invalid"
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}
	// sqlite drivers only expose the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
