package storage

import "github.com/moveease/sitclock/internal/domain"

// TimerSnapshot is the persisted shape of the live sedentary counter.
// Field names match the wire keys the web client used, so an existing
// database keeps working.
type TimerSnapshot struct {
	Time       int  `json:"time"` // elapsed seconds, uncommitted
	Monitoring bool `json:"monitoring"`
}

// SnapshotStore is the per-user key-value store behind the engine. Writes
// are whole snapshots, last-write-wins; partial-field patches are not part
// of the contract so a crash can never resurrect stale fields.
type SnapshotStore interface {
	SaveTimer(userID string, snap TimerSnapshot) error

	// LoadTimer reports found=false when no snapshot exists. A snapshot
	// that cannot be decoded is an error; callers fall back to defaults.
	LoadTimer(userID string) (TimerSnapshot, bool, error)

	SaveSettings(userID string, s domain.Settings) error

	LoadSettings(userID string) (domain.Settings, bool, error)

	Close() error
}
