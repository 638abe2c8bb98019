// Package model defines the domain types for the commitmsg CLI.
//
// This package contains pure data structures with no external dependencies.
// It defines the structured commit message value type (Message), the
// discriminated violation taxonomy (ViolationKind, Violation) shared by
// the formatter and the linter, and the exit-code / CLIError machinery
// used to translate domain errors into OS process exit codes.
//
// Messages are value objects: they are constructed fresh per invocation
// from caller-supplied strings and never mutated after construction.
package model
