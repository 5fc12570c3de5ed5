package cli

import (
	"github.com/spf13/cobra"
)

// NewForgetCommand creates the forget command.
func NewForgetCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forget <index...>",
		Short: "Stop reminders by index",
		Long: `Finish the reminders printed by "tore remind" at the given indices
without firing them. Notifications they already created stay.

Examples:
  tore forget 1`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForget(opts, cmd, args)
		},
	}
	cmd.SetFlagErrorFunc(indexFlagError)
	return cmd
}

func runForget(opts *RootOptions, cmd *cobra.Command, args []string) error {
	indices, err := parseIndices(args)
	if err != nil {
		return commandError("invalid index", err)
	}

	st, err := openStore(opts, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	forgotten, err := st.ForgetReminders(cmd.Context(), indices...)
	if err != nil {
		return commandError("failed to forget reminders", err)
	}

	return showReminders(opts, cmd, st, ReminderList{Forgotten: forgotten})
}
