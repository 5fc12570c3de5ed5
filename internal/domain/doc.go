// Package domain holds the tore data model and the pure rules around it.
//
// The store owns Reminders, Notifications and the migration ledger; the
// values in this package are disposable snapshots loaded for a single
// invocation and never cached across invocations.
//
// Rules kept here have no storage dependency:
//   - ValidateDate: structural YYYY-MM-DD check (no calendar check)
//   - ParsePeriod / Period.Render: "3w" -> "+21 days"
//   - NormalizeTitle: NFC + whitespace trim
//   - GroupKey: tagged key used to collapse notifications spawned by one reminder
package domain
