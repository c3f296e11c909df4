// Package storage keeps named save slots in a local sqlite database.
// Each slot holds the compact binary encoding of one minefield.
package storage

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrBadSlot  = fmt.Errorf("bad save slot name")
	ErrNotFound = fmt.Errorf("save slot not found")
)

type Store struct {
	mu sync.Mutex
	db *sql.DB
}

type SlotInfo struct {
	Slot    string    `json:"slot"`
	Size    int       `json:"size"`
	SavedAt time.Time `json:"saved_at"`
}

func validSlot(name string) bool {
	if name == "" || len(name) > 64 {
		return false
	}
	for _, c := range name {
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// Open opens (creating if necessary) the slot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open slot database: %w", err)
	}
	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS save_slot (
	slot		TEXT PRIMARY KEY,
	data		BLOB NOT NULL,
	saved_at	TIMESTAMP NOT NULL
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create slot table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or fully replaces the slot's save data.
func (s *Store) Put(slot string, data []byte) error {
	if !validSlot(slot) {
		return ErrBadSlot
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
INSERT INTO save_slot (slot, data, saved_at)
VALUES (?, ?, ?)
ON CONFLICT (slot)
DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at;`,
		slot, data, time.Now().UTC())
	return err
}

// Get returns the save data stored in slot, or [ErrNotFound].
func (s *Store) Get(slot string) ([]byte, error) {
	if !validSlot(slot) {
		return nil, ErrBadSlot
	}
	var data []byte
	err := s.db.QueryRow(
		`SELECT data FROM save_slot WHERE slot = ?;`, slot,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes slot without checking whether it existed.
func (s *Store) Delete(slot string) error {
	if !validSlot(slot) {
		return ErrBadSlot
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM save_slot WHERE slot = ?;`, slot)
	return err
}

// List describes every stored slot, most recent first.
func (s *Store) List() ([]SlotInfo, error) {
	rows, err := s.db.Query(`
SELECT slot, length(data), saved_at
FROM save_slot
ORDER BY saved_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	infos := make([]SlotInfo, 0)
	for rows.Next() {
		var info SlotInfo
		if err := rows.Scan(&info.Slot, &info.Size, &info.SavedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
