package cli

import (
	"github.com/spf13/cobra"
)

// DismissOptions holds flags for the dismiss command.
type DismissOptions struct {
	*RootOptions
	Group bool
}

// NewDismissCommand creates the dismiss command.
func NewDismissCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DismissOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dismiss <index...>",
		Short: "Dismiss notifications by index",
		Long: `Dismiss the notifications printed at the given indices. All indices refer
to the listing as it is before the command runs.

A collapsed line stands for several notifications of one reminder; by
default only one of them is dismissed and the line stays with a lower
count. Use --group to dismiss the whole line.

Examples:
  tore dismiss 0
  tore dismiss 0 2 3
  tore dismiss --group 1`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDismiss(opts, cmd, args)
		},
	}

	cmd.SetFlagErrorFunc(indexFlagError)
	cmd.Flags().BoolVar(&opts.Group, "group", false, "dismiss every notification of a collapsed line")

	return cmd
}

func runDismiss(opts *DismissOptions, cmd *cobra.Command, args []string) error {
	indices, err := parseIndices(args)
	if err != nil {
		return commandError("invalid index", err)
	}

	st, err := openStore(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	dismiss := st.DismissNotifications
	if opts.Group {
		dismiss = st.DismissGroups
	}
	dismissed, err := dismiss(cmd.Context(), indices...)
	if err != nil {
		return commandError("failed to dismiss", err)
	}

	return showNotifications(opts.RootOptions, cmd, st, NotificationList{Dismissed: dismissed})
}
