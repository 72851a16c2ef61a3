package domain

import (
	"errors"
	"strings"
)

var (
	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotConfirmed is returned when the user declines a destructive action.
	ErrNotConfirmed = errors.New("action not confirmed")
	// ErrDeliveryNotFound is returned when a delivery id is not in the local list.
	ErrDeliveryNotFound = errors.New("delivery not found")
	// ErrCourierNotFound is returned when a courier id is not in the roster.
	ErrCourierNotFound = errors.New("courier not found")
	// ErrCourierInactive is returned when dispatching to an inactive courier.
	ErrCourierInactive = errors.New("courier is inactive")
	// ErrPersonNotFound is returned when a person id is unknown.
	ErrPersonNotFound = errors.New("person not found")
	// ErrAlreadyDispatched is returned by strict dispatch when the delivery is no longer pending.
	ErrAlreadyDispatched = errors.New("delivery is no longer pending")
	// ErrPanelMismatch is returned when a submission does not match the open panel.
	ErrPanelMismatch = errors.New("submission does not match the open panel")
)

// ValidationError lists the fields that are missing or invalid, by column name.
type ValidationError struct {
	Fields []string
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": missing or invalid " + strings.Join(e.Fields, ", ")
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// fieldErrors collects invalid field names.
type fieldErrors []string

func (f *fieldErrors) require(ok bool, field string) {
	if !ok {
		*f = append(*f, field)
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
