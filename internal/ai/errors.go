package ai

import "fmt"

// ValidationError reports a missing operation-required field. The caller can
// recover by correcting the request; the serving layer maps it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnsupportedOperationError reports an operation outside the supported set.
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("invalid operation: %s. Supported: summarise, read, answer, translate, similar", e.Operation)
}

// BackendError reports that the generative backend was unreachable or
// returned a non-success status. A dependency fault, not a caller fault.
type BackendError struct {
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
