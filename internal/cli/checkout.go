package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/tore/internal/store"
)

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Fire due reminders and list notifications",
		Long: `Turn every reminder due today or earlier into a notification, then list
the active notifications. Notifications spawned by the same reminder are
collapsed into one line with a [count].

This is what tore does when run without a command.

Examples:
  tore
  tore checkout --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(opts, cmd)
		},
	}
}

func runCheckout(opts *RootOptions, cmd *cobra.Command) error {
	st, err := openStore(opts, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	fired, err := st.FireDueReminders(cmd.Context(), opts.Clock.Now())
	if err != nil {
		return commandError("failed to fire reminders", err)
	}

	return showNotifications(opts, cmd, st, NotificationList{Fired: &fired})
}

// showNotifications completes list with the current collapsed listing and
// prints it.
func showNotifications(opts *RootOptions, cmd *cobra.Command, st *store.Store, list NotificationList) error {
	groups, err := st.LoadActiveGrouped(cmd.Context())
	if err != nil {
		return commandError("failed to load notifications", err)
	}
	list.Notifications = groups
	return formatter(opts, cmd).Success(list)
}

// showReminders completes list with the current reminder listing and prints it.
func showReminders(opts *RootOptions, cmd *cobra.Command, st *store.Store, list ReminderList) error {
	reminders, err := st.ListActiveReminders(cmd.Context())
	if err != nil {
		return commandError("failed to load reminders", err)
	}
	list.Reminders = reminders
	return formatter(opts, cmd).Success(list)
}
