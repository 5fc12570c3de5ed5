package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/tore/internal/domain"
)

// pick resolves listing indices to items. Every index is validated before
// anything is returned; repeated indices resolve once.
func pick[T any](items []T, indices []int, what string) ([]T, error) {
	seen := make(map[int]bool, len(indices))
	picked := make([]T, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(items) {
			return nil, domain.NewIndexError(i, len(items), what)
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		picked = append(picked, items[i])
	}
	return picked, nil
}

// DismissNotifications dismisses the representative notification of each
// group at the given indices of LoadActiveGrouped. Other members of a
// collapsed group stay active and keep the group visible with a lower count.
//
// An out-of-range index is a *domain.ValidationError and nothing is dismissed.
func (s *Store) DismissNotifications(ctx context.Context, indices ...int) ([]domain.Group, error) {
	return s.dismiss(ctx, indices, `
		UPDATE Notifications SET dismissed_at = CURRENT_TIMESTAMP
		WHERE dismissed_at IS NULL AND id = ?`,
		func(g domain.Group) []any { return []any{g.ID} },
	)
}

// DismissGroups dismisses every active member of the groups at the given
// indices of LoadActiveGrouped.
func (s *Store) DismissGroups(ctx context.Context, indices ...int) ([]domain.Group, error) {
	return s.dismiss(ctx, indices, `
		UPDATE Notifications SET dismissed_at = CURRENT_TIMESTAMP
		WHERE dismissed_at IS NULL
		AND ((?1 IS NOT NULL AND reminder_id = ?1) OR (?1 IS NULL AND reminder_id IS NULL AND id = ?2))`,
		func(g domain.Group) []any {
			var reminderID sql.NullInt64
			if g.ReminderID != nil {
				reminderID = sql.NullInt64{Int64: *g.ReminderID, Valid: true}
			}
			return []any{reminderID, g.ID}
		},
	)
}

func (s *Store) dismiss(ctx context.Context, indices []int, query string, args func(domain.Group) []any) ([]domain.Group, error) {
	groups, err := s.LoadActiveGrouped(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := pick(groups, indices, "the active notifications")
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("dismiss notifications: begin: %w", err)
	}
	defer tx.Rollback()

	for _, g := range targets {
		if _, err := tx.ExecContext(ctx, query, args(g)...); err != nil {
			return nil, fmt.Errorf("dismiss notification %d: %w", g.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("dismiss notifications: commit: %w", err)
	}

	for _, g := range targets {
		s.log.WithField("group", g.Key().String()).Debug("dismissed notification")
	}
	return targets, nil
}

// ForgetReminders finishes the reminders at the given indices of
// ListActiveReminders without firing them. Notifications they already spawned
// are left alone.
//
// An out-of-range index is a *domain.ValidationError and nothing is finished.
func (s *Store) ForgetReminders(ctx context.Context, indices ...int) ([]domain.Reminder, error) {
	reminders, err := s.ListActiveReminders(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := pick(reminders, indices, "the active reminders")
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("forget reminders: begin: %w", err)
	}
	defer tx.Rollback()

	for _, r := range targets {
		if _, err := tx.ExecContext(ctx, `
			UPDATE Reminders SET finished_at = CURRENT_TIMESTAMP
			WHERE finished_at IS NULL AND id = ?
		`, r.ID); err != nil {
			return nil, fmt.Errorf("forget reminder %d: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("forget reminders: commit: %w", err)
	}

	for _, r := range targets {
		s.log.WithField("reminder_id", r.ID).Debug("forgot reminder")
	}
	return targets, nil
}
