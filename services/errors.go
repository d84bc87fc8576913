package services

// ValidationError blocks an action before any network call. The message
// is safe to surface inline; the user recovers by correcting input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// TransferError covers any network or backend failure. Message is the
// generic user-facing text; the cause is for logs only.
type TransferError struct {
	Message string
	Cause   error
}

func (e *TransferError) Error() string {
	return e.Message
}

func (e *TransferError) Unwrap() error {
	return e.Cause
}
