package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tore/internal/ledger"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")

	applied, err := ledger.Applied(context.Background(), s.DB())
	require.NoError(t, err)
	assert.Equal(t, Migrations, applied)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(context.Background(), path)
		require.NoError(t, err, "Open() iteration %d", i)
		assert.Equal(t, len(Migrations), count(t, s, `SELECT count(*) FROM Migrations`))
		s.Close()
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	tests := []struct {
		name     string
		expected string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"},
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, s.verifyPragma(tt.name, tt.expected))
		})
	}
}

func TestOpen_UnreachablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "test.db")

	_, err := Open(context.Background(), path)
	require.Error(t, err)
}

func TestOpen_UpgradesExistingNotifications(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	seedDatabase(t, path, Migrations[:2],
		`INSERT INTO Notifications (id, title, created_at) VALUES (1, 'water plants', '2024-01-01 10:00:00')`,
		`INSERT INTO Notifications (id, title, created_at, dismissed_at) VALUES (2, 'old', '2024-01-01 09:00:00', '2024-01-02 09:00:00')`,
		`INSERT INTO Notifications (id, title, created_at) VALUES (5, 'pay rent', '2024-01-03 10:00:00')`,
	)

	var trace bytes.Buffer
	s, err := Open(context.Background(), path, WithMigrationTrace(&trace))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, Migrations[2]+"\n", trace.String(), "only the missing migration is applied")
	assert.Equal(t, 3, count(t, s, `SELECT count(*) FROM Notifications WHERE reminder_id IS NULL`))
	assert.True(t, dismissed(t, s, 2))

	groups, err := s.LoadActiveGrouped(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, int64(1), groups[0].ID)
	assert.Equal(t, int64(5), groups[1].ID)

	id, err := s.CreateNotification(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, int64(6), id, "ids continue after the copied rows")
}

func TestOpen_SchemaMismatchLeavesDatabaseUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	drifted := []string{Migrations[0] + " ", Migrations[1]}
	seedDatabase(t, path, drifted)

	_, err := Open(context.Background(), path)
	require.Error(t, err)
	assert.True(t, ledger.IsSchemaMismatch(err))

	db := rawDB(t, path)
	var applied int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM Migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestOpen_SchemaTooNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	newer := append(append([]string{}, Migrations...), "CREATE TABLE Extra (id INTEGER);\n")
	seedDatabase(t, path, newer)

	_, err := Open(context.Background(), path)
	require.Error(t, err)
	assert.True(t, ledger.IsSchemaTooNew(err))
}

func TestOpen_TracesFreshMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	var trace bytes.Buffer
	s, err := Open(context.Background(), path, WithMigrationTrace(&trace))
	require.NoError(t, err)
	s.Close()
	for _, script := range Migrations {
		assert.Contains(t, trace.String(), script)
	}

	trace.Reset()
	s, err = Open(context.Background(), path, WithMigrationTrace(&trace))
	require.NoError(t, err)
	s.Close()
	assert.Empty(t, trace.String())
}

func TestMigrations_Frozen(t *testing.T) {
	require.Len(t, migrationChecksums, len(Migrations))
	assert.NoError(t, ledger.VerifyFrozen(Migrations, migrationChecksums))
}
