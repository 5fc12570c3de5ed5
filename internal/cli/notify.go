package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewNotifyCommand creates the notify command.
func NewNotifyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "notify <title...>",
		Short: "Create a notification",
		Long: `Create a notification. All arguments are joined with single spaces to
form the title.

Examples:
  tore notify water the plants`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotify(opts, cmd, strings.Join(args, " "))
		},
	}
}

func runNotify(opts *RootOptions, cmd *cobra.Command, title string) error {
	st, err := openStore(opts, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.CreateNotification(cmd.Context(), title); err != nil {
		return commandError("failed to create notification", err)
	}

	return showNotifications(opts, cmd, st, NotificationList{})
}
