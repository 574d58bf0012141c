// Package errors provides error handling for rulefmt.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints separated from error chains
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run 'rulefmt fmt' to rewrite the file")
//
//	// Check errors
//	if errors.Is(err, errors.ErrNotCanonical) {
//	    os.Exit(1)
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is           = crdb.Is
	IsAny        = crdb.IsAny
	As           = crdb.As
	Unwrap       = crdb.Unwrap
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Assertions and panics
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for use across rulefmt.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotCanonical indicates rule-list artifacts differ from their
	// canonical form. The check command maps it to a non-zero exit code.
	ErrNotCanonical = New("artifacts are not canonical")

	// ErrNoInput indicates no rule-list files were found under the given paths
	ErrNoInput = New("no rule lists found")
)

// IsNotCanonical checks if an error is or wraps ErrNotCanonical.
func IsNotCanonical(err error) bool {
	return err != nil && Is(err, ErrNotCanonical)
}

// IsNoInput checks if an error is or wraps ErrNoInput.
func IsNoInput(err error) bool {
	return err != nil && Is(err, ErrNoInput)
}
