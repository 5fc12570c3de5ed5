package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tore/internal/config"
	"github.com/roach88/tore/internal/logger"
	"github.com/roach88/tore/internal/store"
	"github.com/roach88/tore/internal/testutil"
)

// testEnv is a store file plus a fixed "today" shared by several invocations.
type testEnv struct {
	t      *testing.T
	dbPath string
	clock  *testutil.FixedClock
}

type result struct {
	stdout string
	stderr string
	code   int
	err    error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Cleanup(func() { logger.Init("info", os.Stderr) })
	return &testEnv{
		t:      t,
		dbPath: filepath.Join(t.TempDir(), "tore.db"),
		clock:  testutil.NewFixedClock("2024-03-01"),
	}
}

// run executes one CLI invocation the way Execute does, with the store
// located through the environment configuration.
func (e *testEnv) run(args ...string) result {
	e.t.Helper()
	opts := &RootOptions{
		Config: config.Config{Path: e.dbPath, LogLevel: "info"},
		Clock:  e.clock,
	}
	return runWith(opts, args...)
}

func runWith(opts *RootOptions, args ...string) result {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root := NewRootCommand(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	res := result{code: ExitSuccess}
	cmd, err := root.ExecuteContextC(context.Background())
	if err != nil {
		ReportError(opts, cmd, err)
		res.code = GetExitCode(err)
		res.err = err
	}
	res.stdout = stdout.String()
	res.stderr = stderr.String()
	return res
}

// openStore opens the environment's store directly for fixtures and checks.
func (e *testEnv) openStore() *store.Store {
	e.t.Helper()
	st, err := store.Open(context.Background(), e.dbPath)
	require.NoError(e.t, err)
	e.t.Cleanup(func() { st.Close() })
	return st
}
