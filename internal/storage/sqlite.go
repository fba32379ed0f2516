package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/moveease/sitclock/internal/domain"
)

const (
	keyTimer    = "timer"
	keySettings = "settings"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		user_id TEXT NOT NULL,
		key TEXT NOT NULL,
		payload TEXT NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, key)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) save(userID, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	query := `
		INSERT OR REPLACE INTO snapshots (user_id, key, payload, updated_at)
		VALUES (?, ?, ?, ?)
	`

	_, err = s.db.Exec(query, userID, key, string(payload), time.Now())
	return err
}

func (s *SQLiteStore) load(userID, key string, dest any) (bool, error) {
	var payload string

	query := `SELECT payload FROM snapshots WHERE user_id = ? AND key = ?`
	err := s.db.QueryRow(query, userID, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return false, err
	}

	return true, nil
}

func (s *SQLiteStore) SaveTimer(userID string, snap TimerSnapshot) error {
	return s.save(userID, keyTimer, snap)
}

func (s *SQLiteStore) LoadTimer(userID string) (TimerSnapshot, bool, error) {
	var snap TimerSnapshot
	found, err := s.load(userID, keyTimer, &snap)
	return snap, found, err
}

func (s *SQLiteStore) SaveSettings(userID string, settings domain.Settings) error {
	return s.save(userID, keySettings, settings)
}

func (s *SQLiteStore) LoadSettings(userID string) (domain.Settings, bool, error) {
	var settings domain.Settings
	found, err := s.load(userID, keySettings, &settings)
	return settings, found, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
