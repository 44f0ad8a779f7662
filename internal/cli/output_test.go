package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_Error(t *testing.T) {
	assert.Equal(t, "edit blocked: a.cs", NewExitError(ExitBlock, "edit blocked: a.cs").Error())

	wrapped := WrapExitError(ExitFailure, "read payload file", errors.New("no such file"))
	assert.Equal(t, "read payload file: no such file", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "no such file")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitBlock, GetExitCode(NewExitError(ExitBlock, "blocked")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitFailure, GetExitCode(nil))

	// The code survives wrapping by callers.
	err := fmt.Errorf("outer: %w", NewExitError(ExitBlock, "blocked"))
	assert.Equal(t, ExitBlock, GetExitCode(err))
}
