package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/roach88/tore/internal/domain"
)

// CreateNotification inserts an active, standalone notification and returns
// its id. The title is normalized first; an empty title is a
// *domain.ValidationError.
func (s *Store) CreateNotification(ctx context.Context, title string) (int64, error) {
	title, err := domain.NormalizeTitle(title)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO Notifications (title) VALUES (?)`, title)
	if err != nil {
		return 0, fmt.Errorf("create notification: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create notification: %w", err)
	}

	s.log.WithField("notification_id", id).Debug("created notification")
	return id, nil
}

// CreateReminder inserts an active reminder scheduled for the YYYY-MM-DD date
// scheduledAt. A nil period makes a one-shot reminder.
//
// The date is only checked structurally; a reminder scheduled in the past
// fires on the next firing pass.
func (s *Store) CreateReminder(ctx context.Context, title, scheduledAt string, period *domain.Period) (int64, error) {
	title, err := domain.NormalizeTitle(title)
	if err != nil {
		return 0, err
	}
	if err := domain.ValidateDate(scheduledAt); err != nil {
		return 0, err
	}

	var rendered any
	if period != nil {
		if err := period.Validate(); err != nil {
			return 0, err
		}
		rendered = period.Render()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO Reminders (title, scheduled_at, period)
		VALUES (?, ?, ?)
	`, title, scheduledAt, rendered)
	if err != nil {
		return 0, fmt.Errorf("create reminder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create reminder: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"reminder_id":  id,
		"scheduled_at": scheduledAt,
		"period":       rendered,
	}).Debug("created reminder")
	return id, nil
}
