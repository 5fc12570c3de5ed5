package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tore/internal/domain"
	"github.com/roach88/tore/internal/ledger"
)

// createTestStore opens a fresh store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// insertNotification inserts a notification with an explicit UTC creation time.
func insertNotification(t *testing.T, s *Store, title, createdAt string, reminderID *int64) int64 {
	t.Helper()
	var rid any
	if reminderID != nil {
		rid = *reminderID
	}
	res, err := s.db.Exec(`INSERT INTO Notifications (title, created_at, reminder_id) VALUES (?, ?, ?)`, title, createdAt, rid)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func createReminder(t *testing.T, s *Store, title, scheduledAt string, period *domain.Period) int64 {
	t.Helper()
	id, err := s.CreateReminder(context.Background(), title, scheduledAt, period)
	require.NoError(t, err)
	return id
}

func every(unit domain.Unit, length uint64) *domain.Period {
	return &domain.Period{Unit: unit, Length: length}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(domain.DateLayout, s, time.Local)
	require.NoError(t, err)
	return d
}

func count(t *testing.T, s *Store, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow(query, args...).Scan(&n))
	return n
}

func scheduledAt(t *testing.T, s *Store, id int64) string {
	t.Helper()
	var v string
	require.NoError(t, s.db.QueryRow(`SELECT CAST(scheduled_at AS TEXT) FROM Reminders WHERE id = ?`, id).Scan(&v))
	return v
}

func finished(t *testing.T, s *Store, id int64) bool {
	t.Helper()
	return count(t, s, `SELECT count(*) FROM Reminders WHERE id = ? AND finished_at IS NOT NULL`, id) == 1
}

func dismissed(t *testing.T, s *Store, id int64) bool {
	t.Helper()
	return count(t, s, `SELECT count(*) FROM Notifications WHERE id = ? AND dismissed_at IS NOT NULL`, id) == 1
}

func ptr(v int64) *int64 { return &v }

// seedDatabase applies scripts to a bare database at path, runs stmts, and
// closes it again, leaving a file as an older release would have.
func seedDatabase(t *testing.T, path string, scripts []string, stmts ...string) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, ledger.EnsureSchema(context.Background(), db, scripts))
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

// rawDB opens a bare connection to path, bypassing the ledger.
func rawDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
