package ledger

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes ledger failures. Every code is fatal for the
// invocation that hit it.
type ErrorCode string

const (
	// CodeSchemaTooNew indicates more applied migrations than this build knows.
	CodeSchemaTooNew ErrorCode = "SCHEMA_TOO_NEW"

	// CodeSchemaMismatch indicates an applied migration whose text differs from the compiled one.
	CodeSchemaMismatch ErrorCode = "SCHEMA_MISMATCH"

	// CodeApplyFailed indicates a pending migration failed to execute.
	// Already-applied migrations are untouched, so the next invocation retries it.
	CodeApplyFailed ErrorCode = "MIGRATION_APPLY_FAILED"

	// CodeFrozenScriptModified indicates a compiled migration no longer matches its pinned checksum.
	CodeFrozenScriptModified ErrorCode = "FROZEN_SCRIPT_MODIFIED"
)

// Error is returned by EnsureSchema and VerifyFrozen.
type Error struct {
	Code ErrorCode

	// Index is the 0-based migration the error refers to.
	Index int

	// Applied and Known are the ledger and compiled counts (CodeSchemaTooNew).
	Applied int
	Known   int

	// Expected and Found are the compiled and stored texts (CodeSchemaMismatch).
	Expected string
	Found    string

	// Err is the store error (CodeApplyFailed).
	Err error
}

func (e *Error) Error() string {
	switch e.Code {
	case CodeSchemaTooNew:
		return fmt.Sprintf("%s: database scheme is too new: %d migrations applied, %d expected; update your application",
			e.Code, e.Applied, e.Known)
	case CodeSchemaMismatch:
		return fmt.Sprintf("%s: invalid database scheme: mismatch in migration %d", e.Code, e.Index)
	case CodeApplyFailed:
		return fmt.Sprintf("%s: migration %d: %v", e.Code, e.Index, e.Err)
	case CodeFrozenScriptModified:
		return fmt.Sprintf("%s: migration %d no longer matches its pinned checksum; add a new migration instead of editing an applied one",
			e.Code, e.Index)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Details returns extra diagnostic lines, currently the expected and found
// texts of a mismatched migration.
func (e *Error) Details() []string {
	if e.Code != CodeSchemaMismatch {
		return nil
	}
	return []string{
		"EXPECTED: " + e.Expected,
		"FOUND: " + e.Found,
	}
}

func hasCode(err error, code ErrorCode) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}

// IsSchemaTooNew reports whether err is a CodeSchemaTooNew ledger error.
func IsSchemaTooNew(err error) bool { return hasCode(err, CodeSchemaTooNew) }

// IsSchemaMismatch reports whether err is a CodeSchemaMismatch ledger error.
func IsSchemaMismatch(err error) bool { return hasCode(err, CodeSchemaMismatch) }

// IsApplyFailed reports whether err is a CodeApplyFailed ledger error.
func IsApplyFailed(err error) bool { return hasCode(err, CodeApplyFailed) }

// IsFrozenScriptModified reports whether err is a CodeFrozenScriptModified ledger error.
func IsFrozenScriptModified(err error) bool { return hasCode(err, CodeFrozenScriptModified) }
