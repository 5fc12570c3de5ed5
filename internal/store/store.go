package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/roach88/tore/internal/ledger"
	"github.com/roach88/tore/internal/logger"
)

// migrationChecksums pins the SHA-256 of every released migration script.
var migrationChecksums = []string{
	"66a35fee8a902ae61732528ad7dba6c2f61aa543798ba4c5db795d6495da7a8c",
	"637719a4d2896d1791934ef7cff1668aa6097e027ad98f61a3959e41204f4a0a",
	"d433bada7af1979d6b8843c0967600884b53c432e6dcca8bc4724ff22ec2ddc3",
}

// Store provides durable storage for notifications and reminders.
type Store struct {
	db  *sql.DB
	log *logrus.Entry

	// fireHook runs after each firing step; a non-nil error aborts the firing.
	fireHook func(step int) error
}

type options struct {
	trace io.Writer
	log   *logrus.Entry
}

// Option configures Open.
type Option func(*options)

// WithMigrationTrace echoes the text of every newly applied migration to w.
func WithMigrationTrace(w io.Writer) Option {
	return func(o *options) { o.trace = w }
}

// WithLogger sets the entry the store logs through.
func WithLogger(entry *logrus.Entry) Option {
	return func(o *options) { o.log = entry }
}

// Open creates or opens the SQLite database at path, applies the required
// pragmas and brings its schema up to date with Migrations.
//
// A database whose ledger disagrees with Migrations is left untouched and a
// *ledger.Error is returned.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	o := options{log: logger.Log.WithField("component", "store")}
	for _, opt := range opts {
		opt(&o)
	}

	if err := ledger.VerifyFrozen(Migrations, migrationChecksums); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", path, err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	ledgerOpts := []ledger.Option{ledger.WithLogger(o.log.WithField("component", "ledger"))}
	if o.trace != nil {
		ledgerOpts = append(ledgerOpts, ledger.WithTrace(o.trace))
	}
	if err := ledger.EnsureSchema(ctx, db, Migrations, ledgerOpts...); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, log: o.log}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
