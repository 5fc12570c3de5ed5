package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/roach88/tore/internal/config"
	"github.com/roach88/tore/internal/domain"
	"github.com/roach88/tore/internal/ledger"
	"github.com/roach88/tore/internal/logger"
	"github.com/roach88/tore/internal/store"
)

// RootOptions holds global flags and collaborators for all commands.
type RootOptions struct {
	Verbose         bool
	Format          string // "text" | "json" | "yaml"
	Database        string
	TraceMigrations bool

	Config config.Config
	Clock  domain.Clock

	runID string
	log   *logrus.Entry
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatText, FormatJSON, FormatYAML}

// NewRootCommand creates the root command for the tore CLI. Without a
// subcommand it behaves as checkout.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts.Clock == nil {
		opts.Clock = domain.SystemClock
	}

	cmd := &cobra.Command{
		Use:   "tore",
		Short: "tore - notifications and reminders on the command line",
		Long: `Keep track of things to do.

Notifications are shown until dismissed. Reminders fire on their scheduled
date, turning into notifications, and recurring ones reschedule themselves.
Every command addresses rows by the index printed next to them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := opts.Config.LogLevel
			if opts.Verbose {
				level = "debug"
			}
			logger.Init(level, cmd.ErrOrStderr())

			opts.runID = newRunID()
			opts.log = logger.Log.WithFields(logrus.Fields{
				"run_id":  opts.runID,
				"command": cmd.Name(),
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the store (default $TORE_PATH or $HOME/.tore)")
	cmd.PersistentFlags().BoolVar(&opts.TraceMigrations, "trace-migrations", false, "print the text of every migration applied")

	// Add subcommands
	cmd.AddCommand(NewCheckoutCommand(opts))
	cmd.AddCommand(NewNotifyCommand(opts))
	cmd.AddCommand(NewDismissCommand(opts))
	cmd.AddCommand(NewRemindCommand(opts))
	cmd.AddCommand(NewForgetCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return ExitCommandError
	}

	opts := &RootOptions{Config: cfg}
	root := NewRootCommand(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return ExitSuccess
	}

	ReportError(opts, cmd, err)
	return GetExitCode(err)
}

// ReportError prints err the way the failed command's format asks for.
// Invalid input is followed by the command's usage line.
func ReportError(opts *RootOptions, cmd *cobra.Command, err error) {
	f := formatter(opts, cmd)

	var (
		ve *domain.ValidationError
		le *ledger.Error
		ee *ExitError
	)
	switch {
	case errors.As(err, &ve):
		f.Error(string(ve.Code), ve.Message, ve.Usage())
	case errors.As(err, &le):
		f.Error(string(le.Code), err.Error(), le.Details())
	case errors.As(err, &ee):
		f.Error("STORE_ERROR", err.Error(), nil)
	default:
		f.Error("USAGE", err.Error(), nil)
	}

	if GetExitCode(err) == ExitFailure && opts.Format == FormatText {
		fmt.Fprintf(f.GetErrWriter(), "Usage: %s\n", cmd.UseLine())
	}
}

func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		RunID:     opts.runID,
	}
}

// openStore opens the configured store; the --db flag wins over the
// environment.
func openStore(opts *RootOptions, cmd *cobra.Command) (*store.Store, error) {
	path := opts.Database
	if path == "" {
		var err error
		if path, err = opts.Config.StorePath(); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to locate store", err)
		}
	}

	storeOpts := []store.Option{store.WithLogger(opts.log.WithField("path", path))}
	if opts.TraceMigrations || bool(opts.Config.TraceMigrationQueries) {
		storeOpts = append(storeOpts, store.WithMigrationTrace(traceWriter(opts, cmd)))
	}

	st, err := store.Open(cmd.Context(), path, storeOpts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, path, err)
	}
	return st, nil
}

// traceWriter is stdout for text output. Structured formats keep stdout for
// the response envelope, so the trace goes to stderr.
func traceWriter(opts *RootOptions, cmd *cobra.Command) io.Writer {
	if opts.Format == FormatText {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}

// commandError maps a store call failure onto an exit code: invalid input
// exits with ExitFailure, anything else with ExitCommandError.
func commandError(message string, err error) error {
	if domain.IsValidationError(err) {
		return WrapExitError(ExitFailure, message, err)
	}
	return WrapExitError(ExitCommandError, message, err)
}

// parseIndices converts display index arguments. A non-number is invalid
// input, like an out-of-range index.
func parseIndices(args []string) ([]int, error) {
	indices := make([]int, 0, len(args))
	for _, arg := range args {
		i, err := strconv.Atoi(arg)
		if err != nil {
			return nil, invalidIndexArg(arg)
		}
		indices = append(indices, i)
	}
	return indices, nil
}

func invalidIndexArg(arg string) *domain.ValidationError {
	return &domain.ValidationError{
		Code:    domain.CodeInvalidIndex,
		Message: fmt.Sprintf("%q is not a valid index", arg),
		Input:   arg,
		Hints:   []string{"indices are the numbers printed before each entry"},
	}
}

// negativeIndexFlag matches the pflag error for an argument such as "-1".
var negativeIndexFlag = regexp.MustCompile(`^unknown shorthand flag: '\d' in (-\d+)$`)

// indexFlagError reports a negative index as an invalid index instead of an
// unknown flag.
func indexFlagError(_ *cobra.Command, err error) error {
	if m := negativeIndexFlag.FindStringSubmatch(err.Error()); m != nil {
		return commandError("invalid index", invalidIndexArg(m[1]))
	}
	return err
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
