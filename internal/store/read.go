package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/tore/internal/domain"
)

// sqliteTimeLayout is the text form of CURRENT_TIMESTAMP and datetime().
const sqliteTimeLayout = "2006-01-02 15:04:05"

// LoadActiveGrouped returns the active notifications collapsed into groups:
// every standalone notification is its own group, and all active
// notifications spawned by the same reminder form one group.
//
// Groups are ordered by the earliest local creation time of their members,
// then by the representative id. Returns an empty slice (not nil) when
// nothing is active.
func (s *Store) LoadActiveGrouped(ctx context.Context) ([]domain.Group, error) {
	// The grouping key is tagged: reminder ids and notification ids never
	// share a group even when they are numerically equal.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, min(datetime(created_at, 'localtime')) AS ts, reminder_id, count(*)
		FROM Notifications
		WHERE dismissed_at IS NULL
		GROUP BY reminder_id IS NULL, ifnull(reminder_id, id)
		ORDER BY ts, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var (
			g          domain.Group
			ts         string
			reminderID sql.NullInt64
		)
		if err := rows.Scan(&g.ID, &g.Title, &ts, &reminderID, &g.Count); err != nil {
			return nil, fmt.Errorf("scan notification group: %w", err)
		}
		if g.CreatedAt, err = parseLocalTime(ts); err != nil {
			return nil, fmt.Errorf("notification %d: %w", g.ID, err)
		}
		if reminderID.Valid {
			id := reminderID.Int64
			g.ReminderID = &id
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return groups, nil
}

// ListActiveReminders returns the unfinished reminders ordered by
// scheduled_at DESC, id ASC. Returns an empty slice (not nil) when nothing is
// active.
func (s *Store) ListActiveReminders(ctx context.Context) ([]domain.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, datetime(created_at, 'localtime'), CAST(scheduled_at AS TEXT), period
		FROM Reminders
		WHERE finished_at IS NULL
		ORDER BY scheduled_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	defer rows.Close()

	reminders := []domain.Reminder{}
	for rows.Next() {
		var (
			r       domain.Reminder
			created string
			period  sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Title, &created, &r.ScheduledAt, &period); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		if r.CreatedAt, err = parseLocalTime(created); err != nil {
			return nil, fmt.Errorf("reminder %d: %w", r.ID, err)
		}
		r.Period = period.String
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}

	return reminders, nil
}

func parseLocalTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(sqliteTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
