package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolation_Error(t *testing.T) {
	v := NewViolation(KindMissingColon, "--change entry must include 'path: description' (got %q)", "oops")
	assert.Equal(t, `--change entry must include 'path: description' (got "oops")`, v.Error())
	assert.Equal(t, KindMissingColon, v.Kind)
}

func TestViolationKindOf(t *testing.T) {
	v := NewViolation(KindContextTooLong, "context must be 1-8 lines")

	// Direct violation.
	kind, ok := ViolationKindOf(v)
	require.True(t, ok)
	assert.Equal(t, KindContextTooLong, kind)

	// Wrapped violation is still discoverable via errors.As.
	wrapped := fmt.Errorf("formatting failed: %w", v)
	kind, ok = ViolationKindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindContextTooLong, kind)

	// A plain error carries no kind.
	_, ok = ViolationKindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestCLIError(t *testing.T) {
	underlying := NewViolation(KindEmptySubject, "subject must not be empty")
	err := WrapCLIError(ExitGeneralError, "invalid commit message input", underlying)

	assert.Equal(t, "invalid commit message input: subject must not be empty", err.Error())
	assert.Equal(t, ExitGeneralError, err.Code)

	// Unwrap exposes the violation to errors.As through the CLIError.
	var v *Violation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, KindEmptySubject, v.Kind)

	// Without an underlying error, only the message is reported.
	bare := NewCLIError(ExitGeneralError, "at least one --context entry is required")
	assert.Equal(t, "at least one --context entry is required", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

// TestCLIError_ForwardedExitCode pins the commit forwarding behavior: the
// code stored in a CLIError is whatever the child process reported, not a
// reinterpreted constant.
func TestCLIError_ForwardedExitCode(t *testing.T) {
	err := WrapCLIError(ExitCode(128), "`git commit` failed with exit code 128", errors.New("exit status 128"))
	assert.Equal(t, ExitCode(128), err.Code)
}
