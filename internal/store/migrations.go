package store

// Migrations is the compiled-in, ordered migration list. Applied scripts are
// identified by their exact text: never edit one, append a new one instead.
// The texts match the ledgers of existing ~/.tore files byte for byte.
var Migrations = []string{
	// Initial scheme
	"CREATE TABLE IF NOT EXISTS Notifications (\n" +
		"    id INTEGER PRIMARY KEY ASC,\n" +
		"    title TEXT NOT NULL,\n" +
		"    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
		"    dismissed_at DATETIME DEFAULT NULL\n" +
		");\n",
	"CREATE TABLE IF NOT EXISTS Reminders (\n" +
		"    id INTEGER PRIMARY KEY ASC,\n" +
		"    title TEXT NOT NULL,\n" +
		"    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
		"    scheduled_at DATE NOT NULL,\n" +
		"    period TEXT DEFAULT NULL,\n" +
		"    finished_at DATETIME DEFAULT NULL\n" +
		");\n",

	// Add reference to the Reminder that created the Notification
	"ALTER TABLE Notifications RENAME TO Notifications_old;\n" +
		"CREATE TABLE IF NOT EXISTS Notifications (\n" +
		"    id INTEGER PRIMARY KEY ASC,\n" +
		"    title TEXT NOT NULL,\n" +
		"    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
		"    dismissed_at DATETIME DEFAULT NULL,\n" +
		"    reminder_id INTEGER DEFAULT NULL,\n" +
		"    FOREIGN KEY (reminder_id) REFERENCES Reminders(id)\n" +
		");\n" +
		"INSERT INTO Notifications (id, title, created_at, dismissed_at)\n" +
		"SELECT id, title, created_at, dismissed_at FROM Notifications_old;\n" +
		"DROP TABLE Notifications_old;\n",
}
