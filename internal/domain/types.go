package domain

import (
	"fmt"
	"time"
)

// Reminder is an active scheduled "thing to do". Period is the rendered date
// offset ("+7 days"); an empty Period means the reminder fires once.
type Reminder struct {
	ID          int64     `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	ScheduledAt string    `json:"scheduled_at" yaml:"scheduled_at"` // YYYY-MM-DD as stored
	Period      string    `json:"period,omitempty" yaml:"period,omitempty"`
}

// Recurring reports whether the reminder reschedules itself after firing.
func (r Reminder) Recurring() bool {
	return r.Period != ""
}

// Group is one visible entry of the collapsed notification listing.
//
// ID is the representative row picked by the store for the group; callers
// must not assume it is the earliest or the lowest id. CreatedAt is the
// earliest creation time among the members, in local time.
type Group struct {
	ID         int64     `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	ReminderID *int64    `json:"reminder_id,omitempty" yaml:"reminder_id,omitempty"`
	Count      int       `json:"count" yaml:"count"`
}

// Key returns the collapsing key shared by every member of the group.
func (g Group) Key() GroupKey {
	if g.ReminderID != nil {
		return GroupKey{Kind: GroupReminder, ID: *g.ReminderID}
	}
	return GroupKey{Kind: GroupStandalone, ID: g.ID}
}

// GroupKind tags which id space a GroupKey.ID belongs to.
type GroupKind int

const (
	// GroupStandalone keys a notification created directly by the user; ID is the notification id.
	GroupStandalone GroupKind = iota
	// GroupReminder keys notifications spawned by one reminder; ID is the reminder id.
	GroupReminder
)

func (k GroupKind) String() string {
	switch k {
	case GroupStandalone:
		return "standalone"
	case GroupReminder:
		return "reminder"
	default:
		return fmt.Sprintf("GroupKind(%d)", int(k))
	}
}

// GroupKey identifies a collapsed group. Notification ids and reminder ids
// live in separate key spaces, so equal numeric ids never collide.
type GroupKey struct {
	Kind GroupKind
	ID   int64
}

func (k GroupKey) String() string {
	return fmt.Sprintf("%s:%d", k.Kind, k.ID)
}
