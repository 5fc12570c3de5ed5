package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/roach88/tore/internal/domain"
)

// FireResult counts the rows touched by one firing pass.
type FireResult struct {
	Fired       int64 `json:"fired" yaml:"fired"`
	Finished    int64 `json:"finished" yaml:"finished"`
	Rescheduled int64 `json:"rescheduled" yaml:"rescheduled"`
	// Stuck lists recurring reminders that fired but whose date SQLite
	// cannot shift. They stay due and fire again on the next pass.
	Stuck []int64 `json:"stuck,omitempty" yaml:"stuck,omitempty"`
}

type firingStep struct {
	name  string
	query string
	count func(*FireResult) *int64
}

// firingSteps run in this order against one "today" value. The first step
// must see the due set before the other two shrink it.
var firingSteps = []firingStep{
	{
		name: "spawn notifications",
		query: `
			INSERT INTO Notifications (title, reminder_id)
			SELECT title, id FROM Reminders
			WHERE scheduled_at <= ? AND finished_at IS NULL
			ORDER BY scheduled_at, id`,
		count: func(r *FireResult) *int64 { return &r.Fired },
	},
	{
		name: "finish one-shot reminders",
		query: `
			UPDATE Reminders SET finished_at = CURRENT_TIMESTAMP
			WHERE scheduled_at <= ? AND finished_at IS NULL AND period IS NULL`,
		count: func(r *FireResult) *int64 { return &r.Finished },
	},
	{
		// Dates SQLite cannot shift (e.g. month 13) stay due; see stuckQuery.
		name: "reschedule recurring reminders",
		query: `
			UPDATE Reminders SET scheduled_at = date(scheduled_at, period)
			WHERE scheduled_at <= ? AND finished_at IS NULL AND period IS NOT NULL
			AND date(scheduled_at, period) IS NOT NULL`,
		count: func(r *FireResult) *int64 { return &r.Rescheduled },
	},
}

const stuckQuery = `
	SELECT id FROM Reminders
	WHERE scheduled_at <= ? AND finished_at IS NULL AND period IS NOT NULL
	AND date(scheduled_at, period) IS NULL
	ORDER BY id`

// FireDueReminders turns every reminder due on or before today into a new
// notification, finishes the one-shot ones and moves the recurring ones
// forward by exactly one period.
//
// The pass runs in a single transaction: either every step is applied or
// none is. today is formatted as a local calendar date; scheduled dates are
// compared as text.
func (s *Store) FireDueReminders(ctx context.Context, today time.Time) (FireResult, error) {
	day := domain.FormatDate(today)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FireResult{}, fmt.Errorf("fire reminders: begin: %w", err)
	}
	defer tx.Rollback()

	var res FireResult
	for i, step := range firingSteps {
		r, err := tx.ExecContext(ctx, step.query, day)
		if err != nil {
			return FireResult{}, fmt.Errorf("fire reminders: %s: %w", step.name, err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return FireResult{}, fmt.Errorf("fire reminders: %s: %w", step.name, err)
		}
		*step.count(&res) = n

		if s.fireHook != nil {
			if err := s.fireHook(i + 1); err != nil {
				return FireResult{}, fmt.Errorf("fire reminders: after %s: %w", step.name, err)
			}
		}
	}

	if res.Stuck, err = stuckReminders(ctx, tx, day); err != nil {
		return FireResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return FireResult{}, fmt.Errorf("fire reminders: commit: %w", err)
	}

	for _, id := range res.Stuck {
		s.log.WithFields(logrus.Fields{
			"reminder_id": id,
			"today":       day,
		}).Warn("reminder date cannot be rescheduled; it stays due")
	}

	entry := s.log.WithFields(logrus.Fields{
		"today":       day,
		"fired":       res.Fired,
		"finished":    res.Finished,
		"rescheduled": res.Rescheduled,
	})
	if res.Fired > 0 {
		entry.Info("fired due reminders")
	} else {
		entry.Debug("no reminders due")
	}
	return res, nil
}

func stuckReminders(ctx context.Context, tx *sql.Tx, day string) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, stuckQuery, day)
	if err != nil {
		return nil, fmt.Errorf("fire reminders: find stuck reminders: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("fire reminders: find stuck reminders: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fire reminders: find stuck reminders: %w", err)
	}
	return ids, nil
}
