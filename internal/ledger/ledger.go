// Package ledger verifies and extends a SQLite schema against a compiled-in,
// ordered list of migration scripts.
//
// The ledger table records the exact text of every applied script. Identity
// is the text itself: there is no version number and no down-migration. Any
// change to an applied script, even whitespace, is drift and must ship as a
// new script instead.
package ledger

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/roach88/tore/internal/logger"
)

// createLedgerSQL bootstraps the ledger. Its own creation is not recorded.
const createLedgerSQL = "CREATE TABLE IF NOT EXISTS Migrations (\n" +
	"    applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
	"    query TEXT NOT NULL\n" +
	");\n"

type options struct {
	trace io.Writer
	log   *logrus.Entry
}

// Option configures EnsureSchema.
type Option func(*options)

// WithTrace writes the full text of every newly applied script to w.
func WithTrace(w io.Writer) Option {
	return func(o *options) { o.trace = w }
}

// WithLogger sets the entry used for progress logging.
func WithLogger(entry *logrus.Entry) Option {
	return func(o *options) { o.log = entry }
}

// EnsureSchema makes the ledger of db match scripts.
//
// Applied entries must be a prefix of scripts with exact text equality;
// otherwise a CodeSchemaMismatch or CodeSchemaTooNew *Error is returned and
// nothing is written. The remaining scripts are then applied in order, each
// in its own transaction together with its ledger row. Running EnsureSchema
// again with the same scripts performs no writes.
func EnsureSchema(ctx context.Context, db *sql.DB, scripts []string, opts ...Option) error {
	o := options{log: logger.Log.WithField("component", "ledger")}
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := db.ExecContext(ctx, createLedgerSQL); err != nil {
		return fmt.Errorf("ensure ledger table: %w", err)
	}

	applied, err := readApplied(ctx, db)
	if err != nil {
		return err
	}

	for i, query := range applied {
		if i >= len(scripts) {
			return &Error{Code: CodeSchemaTooNew, Index: i, Applied: len(applied), Known: len(scripts)}
		}
		if query != scripts[i] {
			return &Error{Code: CodeSchemaMismatch, Index: i, Expected: scripts[i], Found: query}
		}
	}

	for i := len(applied); i < len(scripts); i++ {
		o.log.WithField("migration", i).Info("applying migration")
		if o.trace != nil {
			fmt.Fprintln(o.trace, scripts[i])
		}
		if err := apply(ctx, db, scripts[i]); err != nil {
			return &Error{Code: CodeApplyFailed, Index: i, Err: err}
		}
	}

	return nil
}

// Applied returns the ledger texts in application order.
func Applied(ctx context.Context, db *sql.DB) ([]string, error) {
	return readApplied(ctx, db)
}

func readApplied(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT query FROM Migrations ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var applied []string
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return nil, fmt.Errorf("scan ledger: %w", err)
		}
		applied = append(applied, query)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger: %w", err)
	}
	return applied, nil
}

func apply(ctx context.Context, db *sql.DB, script string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO Migrations (query) VALUES (?)", script); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Checksum returns the hex SHA-256 of a script's exact text.
func Checksum(script string) string {
	sum := sha256.Sum256([]byte(script))
	return hex.EncodeToString(sum[:])
}

// VerifyFrozen checks every script against its pinned checksum, so that an
// edit to an already released script fails before any database is touched.
func VerifyFrozen(scripts, checksums []string) error {
	if len(scripts) != len(checksums) {
		index := min(len(scripts), len(checksums))
		return &Error{Code: CodeFrozenScriptModified, Index: index, Applied: len(checksums), Known: len(scripts)}
	}
	for i, script := range scripts {
		if Checksum(script) != checksums[i] {
			return &Error{Code: CodeFrozenScriptModified, Index: i}
		}
	}
	return nil
}
