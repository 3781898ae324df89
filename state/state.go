// Package state persists a playback snapshot (queue sources, progress index,
// volume, loop flag) to a sqlite file so a host application can restore its
// player across runs.
package state

import (
	"database/sql"
	"errors"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"cueplay/playback"
)

const (
	appName    = "cueplay"
	dbFileName = "cueplay.db"
)

// Store holds the sqlite-backed snapshot store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot store at the xdg data path.
func Open() (*Store, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens (creating if needed) a snapshot store at an explicit path.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot.
func (s *Store) Save(snap playback.Snapshot) error {
	return withTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM queue_sources`); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO player_state (id, current_index, volume, loop)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				volume = excluded.volume,
				loop = excluded.loop
		`, snap.Index, snap.Volume, snap.Loop)
		if err != nil {
			return err
		}
		for pos, src := range snap.Sources {
			if _, err := tx.Exec(`
				INSERT INTO queue_sources (position, source) VALUES (?, ?)
			`, pos, src); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns the stored snapshot, or nil when none has been saved.
func (s *Store) Load() (*playback.Snapshot, error) {
	var snap playback.Snapshot

	row := s.db.QueryRow(`SELECT current_index, volume, loop FROM player_state WHERE id = 1`)
	err := row.Scan(&snap.Index, &snap.Volume, &snap.Loop)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT source FROM queue_sources ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, err
		}
		snap.Sources = append(snap.Sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &snap, nil
}

// withTx runs fn inside a transaction, rolling back on error.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
