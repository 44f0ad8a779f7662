package cli

import (
	"errors"
	"fmt"
)

// Exit codes. The host reads the process status: anything but ExitBlock
// leaves the edit in place.
const (
	// ExitAllow means the edit goes through, warnings included.
	ExitAllow = 0

	// ExitFailure means the gate itself failed (bad flags, unreadable
	// payload file). The edit is not blocked by a gate failure.
	ExitFailure = 1

	// ExitBlock tells the host to discard the edit.
	ExitBlock = 2
)

// ExitError carries a specific process exit code out of a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure for errors that carry no code.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
