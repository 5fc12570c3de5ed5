package domain

import (
	"errors"
	"fmt"
)

// ValidationErrorCode categorizes user input errors.
type ValidationErrorCode string

const (
	// CodeInvalidDate indicates a scheduled date that is not shaped YYYY-MM-DD.
	CodeInvalidDate ValidationErrorCode = "INVALID_DATE"

	// CodeInvalidPeriod indicates a period without a usable leading length.
	CodeInvalidPeriod ValidationErrorCode = "INVALID_PERIOD"

	// CodeInvalidPeriodModifier indicates a period whose unit letter is unknown.
	CodeInvalidPeriodModifier ValidationErrorCode = "INVALID_PERIOD_MODIFIER"

	// CodeInvalidIndex indicates a display index outside the current listing.
	CodeInvalidIndex ValidationErrorCode = "INVALID_INDEX"

	// CodeEmptyTitle indicates a title that is blank after normalization.
	CodeEmptyTitle ValidationErrorCode = "EMPTY_TITLE"
)

// ValidationError reports malformed user input. The command that produced it
// is aborted; Usage carries the corrective hints shown to the user.
type ValidationError struct {
	Code    ValidationErrorCode
	Message string
	Input   string
	Hints   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Usage returns the corrective hint lines, possibly empty.
func (e *ValidationError) Usage() []string {
	return e.Hints
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// HasCode reports whether err wraps a *ValidationError with the given code.
func HasCode(err error, code ValidationErrorCode) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code == code
	}
	return false
}

// NewIndexError creates the error returned when index does not address any
// of the count entries of a listing named by what ("the active reminders").
func NewIndexError(index, count int, what string) *ValidationError {
	hint := "the listing is empty"
	if count > 0 {
		hint = fmt.Sprintf("valid indices are 0..%d", count-1)
	}
	return &ValidationError{
		Code:    CodeInvalidIndex,
		Message: fmt.Sprintf("%d is not a valid index of %s", index, what),
		Input:   fmt.Sprintf("%d", index),
		Hints:   []string{hint},
	}
}
