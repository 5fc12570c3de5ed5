package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/tore/internal/web"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr     string
	FireSpec string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a status page of notifications and reminders",
		Long: `Serve an HTML page listing the active notifications and reminders, plus
the same data as JSON under /api/status.

With --fire-spec the server also fires due reminders on a cron schedule
("@every 10m", "0 8 * * *"). Without it the store is only read.

Stops on SIGINT or SIGTERM.

Examples:
  tore serve
  tore serve --addr 127.0.0.1:8080 --fire-spec "@hourly"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	addr := rootOpts.Config.Addr
	if addr == "" {
		addr = web.DefaultAddr
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", addr, "listen address")
	cmd.Flags().StringVar(&opts.FireSpec, "fire-spec", rootOpts.Config.FireSpec, "cron spec for firing due reminders (empty disables)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	st, err := openStore(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	srv, err := web.NewServer(st, web.Options{
		Clock:    opts.Clock,
		FireSpec: opts.FireSpec,
		Version:  Version.String(),
		Logger:   opts.log.WithField("component", "web"),
	})
	if err != nil {
		return WrapExitError(ExitFailure, "invalid --fire-spec", err)
	}

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to listen", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Listening to http://%s/\n", ln.Addr())
	if err := srv.Serve(ctx, ln); err != nil {
		return WrapExitError(ExitCommandError, "server error", err)
	}
	return nil
}
