package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/tore/internal/domain"
)

// NewRemindCommand creates the remind command.
func NewRemindCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remind [<title> <scheduled_at> [period]]",
		Short: "List or create reminders",
		Long: `Without arguments, list the active reminders, latest scheduled first.

With a title and a YYYY-MM-DD date, create a reminder that fires on that
date. An optional period makes it recurring: a positive length followed by
one of d (days), w (weeks), m (months) or y (years).

Examples:
  tore remind
  tore remind "pay rent" 2024-02-01 1m
  tore remind dentist 2024-03-15`,
		Args:          remindArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemind(opts, cmd, args)
		},
	}
}

func remindArgs(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0, 2, 3:
		return nil
	case 1:
		return errors.New("expected scheduled_at")
	default:
		return errors.New("too many arguments")
	}
}

func runRemind(opts *RootOptions, cmd *cobra.Command, args []string) error {
	var period *domain.Period
	if len(args) > 0 {
		if err := domain.ValidateDate(args[1]); err != nil {
			return commandError("invalid date", err)
		}
		if len(args) == 3 {
			p, err := domain.ParsePeriod(args[2])
			if err != nil {
				return commandError("invalid period", err)
			}
			period = &p
		}
	}

	st, err := openStore(opts, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if len(args) > 0 {
		if _, err := st.CreateReminder(cmd.Context(), args[0], args[1], period); err != nil {
			return commandError("failed to create reminder", err)
		}
	}

	return showReminders(opts, cmd, st, ReminderList{})
}
