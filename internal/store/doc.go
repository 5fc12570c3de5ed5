// Package store provides SQLite-backed storage for notifications and
// reminders.
//
// The schema is owned by the migration ledger: Open verifies the pinned
// checksums of the compiled-in Migrations and brings the database up to date
// before any other statement runs.
//
// # Listings and indices
//
// Users address rows by their position in a listing, never by id:
//   - LoadActiveGrouped: ORDER BY earliest local creation time, id
//   - ListActiveReminders: ORDER BY scheduled_at DESC, id
//
// Index-addressed operations resolve every index against one listing and
// validate them all before writing anything.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads while the daemon writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: Notifications.reminder_id must reference a reminder
package store
