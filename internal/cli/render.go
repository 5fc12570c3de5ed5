package cli

import (
	"fmt"
	"io"

	"github.com/roach88/tore/internal/domain"
	"github.com/roach88/tore/internal/store"
)

// timestampLayout renders notification times as SQLite prints them.
const timestampLayout = "2006-01-02 15:04:05"

// NotificationList is the collapsed notification listing printed by
// checkout, notify and dismiss.
type NotificationList struct {
	Fired         *store.FireResult `json:"fired,omitempty" yaml:"fired,omitempty"`
	Dismissed     []domain.Group    `json:"dismissed,omitempty" yaml:"dismissed,omitempty"`
	Notifications []domain.Group    `json:"notifications" yaml:"notifications"`
}

// WriteText prints one line per group, prefixed by its display index.
func (l NotificationList) WriteText(w io.Writer) error {
	for i, g := range l.Notifications {
		var err error
		if g.Count > 1 {
			_, err = fmt.Fprintf(w, "%d: [%d] %s (%s)\n", i, g.Count, g.Title, g.CreatedAt.Format(timestampLayout))
		} else {
			_, err = fmt.Fprintf(w, "%d: %s (%s)\n", i, g.Title, g.CreatedAt.Format(timestampLayout))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ReminderList is the active reminder listing printed by remind and forget.
type ReminderList struct {
	Forgotten []domain.Reminder `json:"forgotten,omitempty" yaml:"forgotten,omitempty"`
	Reminders []domain.Reminder `json:"reminders" yaml:"reminders"`
}

// WriteText prints one line per reminder, prefixed by its display index.
func (l ReminderList) WriteText(w io.Writer) error {
	for i, r := range l.Reminders {
		var err error
		if r.Recurring() {
			_, err = fmt.Fprintf(w, "%d: %s (Scheduled at %s every %s)\n", i, r.Title, r.ScheduledAt, r.Period)
		} else {
			_, err = fmt.Fprintf(w, "%d: %s (Scheduled at %s)\n", i, r.Title, r.ScheduledAt)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// VersionInfo is printed by the version command.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
}

func (v VersionInfo) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "tore %s\n", v.Version)
	return err
}
