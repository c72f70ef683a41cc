package chat

import "fmt"

// Stable error codes delivered to the OnError callback.
const (
	CodeSendMessage    = "SEND_MESSAGE_ERROR"
	CodeConfirmBooking = "CONFIRM_BOOKING_ERROR"
	CodeCreateBooking  = "CREATE_BOOKING_ERROR"
	CodeInit           = "INIT_ERROR"
)

// ChatError pairs a stable code with a human-readable message. Every
// orchestrator failure path produces one; none is fatal.
type ChatError struct {
	Code    string
	Message string
	Err     error
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ChatError) Unwrap() error {
	return e.Err
}

func newChatError(code, message string, err error) *ChatError {
	return &ChatError{Code: code, Message: message, Err: err}
}
