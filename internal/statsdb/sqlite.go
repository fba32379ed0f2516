package statsdb

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *SQLiteRepository) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_stats (
		user_id TEXT PRIMARY KEY,
		total_workouts INTEGER NOT NULL DEFAULT 0,
		current_streak INTEGER NOT NULL DEFAULT 0,
		last_workout_date TEXT NOT NULL DEFAULT '',
		timer_end_at INTEGER NOT NULL DEFAULT 0,
		timer_duration INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS daily_activity (
		user_id TEXT NOT NULL,
		activity_date TEXT NOT NULL,
		sedentary_minutes INTEGER NOT NULL DEFAULT 0,
		active_breaks INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, activity_date)
	);

	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		username TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS announcements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_activity_date ON daily_activity(user_id, activity_date);
	`

	_, err := r.db.Exec(schema)
	return err
}

func (r *SQLiteRepository) GetStats(userID string) (*StatsRecord, error) {
	query := `
		SELECT total_workouts, current_streak, last_workout_date, timer_end_at, timer_duration
		FROM user_stats
		WHERE user_id = ?
	`

	rec := StatsRecord{UserID: userID}
	err := r.db.QueryRow(query, userID).Scan(
		&rec.TotalWorkouts,
		&rec.CurrentStreak,
		&rec.LastWorkoutDate,
		&rec.TimerEndAt,
		&rec.TimerDuration,
	)
	if err == sql.ErrNoRows {
		return &rec, nil
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *SQLiteRepository) UpsertStats(rec *StatsRecord) error {
	query := `
		INSERT INTO user_stats (user_id, total_workouts, current_streak, last_workout_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			total_workouts = excluded.total_workouts,
			current_streak = excluded.current_streak,
			last_workout_date = excluded.last_workout_date
	`

	_, err := r.db.Exec(query, rec.UserID, rec.TotalWorkouts, rec.CurrentStreak, rec.LastWorkoutDate)
	return err
}

func (r *SQLiteRepository) SetTimer(userID string, endAt int64, durationSec int) error {
	query := `
		INSERT INTO user_stats (user_id, timer_end_at, timer_duration)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			timer_end_at = excluded.timer_end_at,
			timer_duration = excluded.timer_duration
	`

	_, err := r.db.Exec(query, userID, endAt, durationSec)
	return err
}

func (r *SQLiteRepository) UpsertActivity(rec *ActivityRecord) error {
	// MAX keeps the day's minutes monotonic: a client that raced an older
	// total can never shrink what another device already committed.
	query := `
		INSERT INTO daily_activity (user_id, activity_date, sedentary_minutes, active_breaks)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, activity_date) DO UPDATE SET
			sedentary_minutes = MAX(daily_activity.sedentary_minutes, excluded.sedentary_minutes),
			active_breaks = MAX(daily_activity.active_breaks, excluded.active_breaks)
	`

	_, err := r.db.Exec(query, rec.UserID, rec.Date, rec.SedentaryMinutes, rec.ActiveBreaks)
	return err
}

func (r *SQLiteRepository) GetRecentActivity(userID, fromDate string) ([]ActivityRecord, error) {
	query := `
		SELECT user_id, activity_date, sedentary_minutes, active_breaks
		FROM daily_activity
		WHERE user_id = ? AND activity_date >= ?
		ORDER BY activity_date ASC
	`

	rows, err := r.db.Query(query, userID, fromDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivity(rows)
}

func (r *SQLiteRepository) GetProfile(userID string) (*ProfileRecord, error) {
	rec := ProfileRecord{UserID: userID}

	query := `SELECT username, avatar_url FROM profiles WHERE user_id = ?`
	err := r.db.QueryRow(query, userID).Scan(&rec.Username, &rec.AvatarURL)
	if err == sql.ErrNoRows {
		return &rec, nil
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *SQLiteRepository) UpdateProfile(rec *ProfileRecord) error {
	query := `
		INSERT INTO profiles (user_id, username, avatar_url)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			username = excluded.username,
			avatar_url = excluded.avatar_url
	`

	_, err := r.db.Exec(query, rec.UserID, rec.Username, rec.AvatarURL)
	return err
}

func (r *SQLiteRepository) ListAnnouncements(limit int) ([]Announcement, error) {
	query := `
		SELECT id, title, content, created_at
		FROM announcements
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Announcement
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *SQLiteRepository) CreateAnnouncement(title, content string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO announcements (title, content) VALUES (?, ?)`, title, content)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanActivity(rows *sql.Rows) ([]ActivityRecord, error) {
	var records []ActivityRecord

	for rows.Next() {
		var rec ActivityRecord
		err := rows.Scan(&rec.UserID, &rec.Date, &rec.SedentaryMinutes, &rec.ActiveBreaks)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
