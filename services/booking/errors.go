package booking

import "fmt"

// MissingSelectionError signals a booking attempt without a complete
// selection set. Surfaced to the user; never fatal.
type MissingSelectionError struct {
	Field string
}

func (e *MissingSelectionError) Error() string {
	return fmt.Sprintf("missingSelection: no %s selected", e.Field)
}

func NewMissingSelectionError(field string) error {
	return &MissingSelectionError{Field: field}
}

// FinalizeError wraps infrastructure failures while materializing a booking.
type FinalizeError struct {
	Code    string
	Message string
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewFinalizeError(msg string) error {
	return &FinalizeError{
		Code:    "finalizeError",
		Message: msg,
	}
}
