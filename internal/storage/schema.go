// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for entries, chat_turns, and tip_usage.
package storage

// initSchema creates the tables if they do not exist.
// Numeric columns are nullable: NULL is the missing-value marker.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		sleep_hours REAL,
		meals TEXT NOT NULL DEFAULT '',
		mood TEXT NOT NULL DEFAULT '',
		steps INTEGER
	);

	CREATE TABLE IF NOT EXISTS chat_turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		role TEXT NOT NULL,
		message TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tip_usage (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		tip TEXT NOT NULL,
		category TEXT NOT NULL
	);
	`

	_, err := d.db.Exec(schema)
	return err
}
