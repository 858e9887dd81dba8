// Package errors re-exports github.com/cockroachdb/errors so the rest of
// the module carries stack traces, hints and assertion markers without
// importing the library directly.
//
//	return errors.WithHint(errors.Newf("%s:%d: unknown type %q", ...), "declare the type first")
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

// User-facing hints and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions mark contract violations of a caller, not runtime failures.
var (
	AssertionFailedf    = crdb.AssertionFailedf
	HasAssertionFailure = crdb.HasAssertionFailure
)
