package state

import "database/sql"

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS player_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_index INTEGER NOT NULL DEFAULT -1,
			volume REAL NOT NULL DEFAULT 1.0,
			loop INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS queue_sources (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			source TEXT NOT NULL,
			UNIQUE(position)
		);

		CREATE INDEX IF NOT EXISTS idx_queue_sources_position ON queue_sources(position);
	`)
	return err
}
