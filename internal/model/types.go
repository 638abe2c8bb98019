package model

import (
	"errors"
	"fmt"
)

// Message holds the structured input for one commit message: a subject line
// plus the four section entry lists. Each entry is a raw, possibly multi-line
// string supplied by the caller (one string per logical bullet or context
// block). The formatter normalizes and validates the entries; nothing in
// this struct is trusted to be well-formed.
type Message struct {
	// Subject is the commit subject line.
	Subject string `json:"subject"`

	// Context holds the rationale entries rendered under "Context:".
	Context []string `json:"context"`

	// Enables holds the capability entries rendered under "What this enables:".
	Enables []string `json:"enable"`

	// Changes holds the per-file change entries rendered under
	// "Changes (by file):". Each entry's first line must take the
	// "label: description" form.
	Changes []string `json:"change"`

	// Deferred holds the follow-up work entries rendered under "Deferred:".
	Deferred []string `json:"deferred"`
}

// ViolationKind identifies one specific way a commit message (or the
// structured input for one) can be malformed. The formatter and the linter
// both report the first violation they encounter as exactly one kind, so
// callers and tests can branch on the kind instead of matching message text.
type ViolationKind string

// Violation kinds reported while formatting structured input.
const (
	// KindEmptySubject indicates the subject line is empty after trimming.
	// Reported by both the formatter and the linter.
	KindEmptySubject ViolationKind = "empty-subject"

	// KindEmptyContext indicates no context lines remain after stripping
	// leading and trailing blank lines.
	KindEmptyContext ViolationKind = "empty-context"

	// KindConsecutiveBlankLines indicates two adjacent blank lines inside
	// the context section. Reported by both the formatter and the linter.
	KindConsecutiveBlankLines ViolationKind = "consecutive-blank-lines"

	// KindContextTooLong indicates the context section exceeds the
	// configured non-blank line limit. Reported by both sides.
	KindContextTooLong ViolationKind = "context-too-long"

	// KindEmptyBulletEntry indicates a bullet entry with no content left
	// after stripping blank lines and an optional leading "- " marker.
	KindEmptyBulletEntry ViolationKind = "empty-bullet-entry"

	// KindBlankLineInBullet indicates a blank line inside a multi-line
	// bullet entry.
	KindBlankLineInBullet ViolationKind = "blank-line-in-bullet"

	// KindMissingColon indicates a change entry whose first line has no
	// colon separating label from description.
	KindMissingColon ViolationKind = "missing-colon"

	// KindMissingLabel indicates a change entry with nothing before the colon.
	KindMissingLabel ViolationKind = "missing-label"

	// KindMissingDescription indicates a change entry with nothing after
	// the colon.
	KindMissingDescription ViolationKind = "missing-description"

	// KindPathOutsideRepo indicates a change label path that resolves
	// outside the repository root.
	KindPathOutsideRepo ViolationKind = "path-outside-repo"

	// KindPathIsRoot indicates a change label path that resolves to the
	// repository root itself rather than a file or directory within it.
	KindPathIsRoot ViolationKind = "path-is-root"

	// KindPathNotFound indicates a change label path that neither exists in
	// the working tree nor is recorded as deleted in version control.
	KindPathNotFound ViolationKind = "path-not-found"
)

// Violation kinds reported while linting raw message text.
const (
	// KindEmptyMessage indicates the message contains no lines at all
	// once trailing blank lines are removed.
	KindEmptyMessage ViolationKind = "empty-message"

	// KindMissingBlankAfterSubject indicates the line after the subject
	// is not blank (or the message ends before any section can start).
	KindMissingBlankAfterSubject ViolationKind = "missing-blank-after-subject"

	// KindMissingHeader indicates an expected section header was not found
	// at its required position.
	KindMissingHeader ViolationKind = "missing-header"

	// KindBadSeparator indicates zero or more than one blank line between
	// a section body and the next header.
	KindBadSeparator ViolationKind = "bad-separator"

	// KindEmptySection indicates a section with no body lines, or a bullet
	// section with no bullets.
	KindEmptySection ViolationKind = "empty-section"

	// KindContextEdgeBlank indicates the context section starts or ends
	// with a blank line.
	KindContextEdgeBlank ViolationKind = "context-edge-blank"

	// KindBlankLineInSection indicates a blank line inside a bullet
	// section, or an indented continuation carrying no text.
	KindBlankLineInSection ViolationKind = "blank-line-in-section"

	// KindEmptyBullet indicates a "- " bullet with no text after the marker.
	KindEmptyBullet ViolationKind = "empty-bullet"

	// KindOrphanContinuation indicates an indented continuation line with
	// no bullet before it.
	KindOrphanContinuation ViolationKind = "orphan-continuation"

	// KindBadLineFormat indicates a section line that is neither a bullet
	// nor an indented continuation.
	KindBadLineFormat ViolationKind = "bad-line-format"

	// KindBadChangeFormat indicates a change bullet that does not follow
	// the "label: description" form.
	KindBadChangeFormat ViolationKind = "bad-change-format"
)

// Violation is the error type for every grammar or content failure detected
// by the formatter or the linter. Kind is the machine-readable discriminant;
// Detail is the human-readable diagnostic surfaced to the user.
//
// There is no aggregation: one formatting or linting call reports at most
// one Violation, for the first failure encountered.
type Violation struct {
	// Kind identifies which rule was broken.
	Kind ViolationKind

	// Detail is the diagnostic message shown to the user.
	Detail string
}

// Error satisfies the error interface.
func (v *Violation) Error() string {
	return v.Detail
}

// NewViolation creates a Violation with a formatted detail message.
func NewViolation(kind ViolationKind, format string, args ...interface{}) *Violation {
	return &Violation{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// ViolationKindOf extracts the ViolationKind from an error, unwrapping as
// needed. Returns the empty kind and false if the error chain contains no
// Violation.
func ViolationKindOf(err error) (ViolationKind, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v.Kind, true
	}
	return "", false
}

// ExitCode defines the CLI process exit codes. These allow scripts and
// Git hooks to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates a formatting, linting, or I/O failure.
	// Lint violations always exit with this code.
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// When a `git commit` invocation fails, Code holds the child process's
// exit code unchanged so callers see the same status git reported.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
