package statsdb

import (
	"database/sql"

	_ "github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(connStr string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	repo := &PostgresRepository{db: db}
	if err := repo.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *PostgresRepository) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_stats (
		user_id TEXT PRIMARY KEY,
		total_workouts INTEGER NOT NULL DEFAULT 0,
		current_streak INTEGER NOT NULL DEFAULT 0,
		last_workout_date TEXT NOT NULL DEFAULT '',
		timer_end_at BIGINT NOT NULL DEFAULT 0,
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
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

func (r *PostgresRepository) GetStats(userID string) (*StatsRecord, error) {
	query := `
		SELECT total_workouts, current_streak, last_workout_date, timer_end_at, timer_duration
		FROM user_stats
		WHERE user_id = $1
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

func (r *PostgresRepository) UpsertStats(rec *StatsRecord) error {
	query := `
		INSERT INTO user_stats (user_id, total_workouts, current_streak, last_workout_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			total_workouts = excluded.total_workouts,
			current_streak = excluded.current_streak,
			last_workout_date = excluded.last_workout_date
	`

	_, err := r.db.Exec(query, rec.UserID, rec.TotalWorkouts, rec.CurrentStreak, rec.LastWorkoutDate)
	return err
}

func (r *PostgresRepository) SetTimer(userID string, endAt int64, durationSec int) error {
	query := `
		INSERT INTO user_stats (user_id, timer_end_at, timer_duration)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			timer_end_at = excluded.timer_end_at,
			timer_duration = excluded.timer_duration
	`

	_, err := r.db.Exec(query, userID, endAt, durationSec)
	return err
}

func (r *PostgresRepository) UpsertActivity(rec *ActivityRecord) error {
	query := `
		INSERT INTO daily_activity (user_id, activity_date, sedentary_minutes, active_breaks)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, activity_date) DO UPDATE SET
			sedentary_minutes = GREATEST(daily_activity.sedentary_minutes, excluded.sedentary_minutes),
			active_breaks = GREATEST(daily_activity.active_breaks, excluded.active_breaks)
	`

	_, err := r.db.Exec(query, rec.UserID, rec.Date, rec.SedentaryMinutes, rec.ActiveBreaks)
	return err
}

func (r *PostgresRepository) GetRecentActivity(userID, fromDate string) ([]ActivityRecord, error) {
	query := `
		SELECT user_id, activity_date, sedentary_minutes, active_breaks
		FROM daily_activity
		WHERE user_id = $1 AND activity_date >= $2
		ORDER BY activity_date ASC
	`

	rows, err := r.db.Query(query, userID, fromDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivity(rows)
}

func (r *PostgresRepository) GetProfile(userID string) (*ProfileRecord, error) {
	rec := ProfileRecord{UserID: userID}

	query := `SELECT username, avatar_url FROM profiles WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&rec.Username, &rec.AvatarURL)
	if err == sql.ErrNoRows {
		return &rec, nil
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *PostgresRepository) UpdateProfile(rec *ProfileRecord) error {
	query := `
		INSERT INTO profiles (user_id, username, avatar_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			username = excluded.username,
			avatar_url = excluded.avatar_url
	`

	_, err := r.db.Exec(query, rec.UserID, rec.Username, rec.AvatarURL)
	return err
}

func (r *PostgresRepository) ListAnnouncements(limit int) ([]Announcement, error) {
	query := `
		SELECT id, title, content, created_at
		FROM announcements
		ORDER BY created_at DESC
		LIMIT $1
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

func (r *PostgresRepository) CreateAnnouncement(title, content string) (int64, error) {
	var id int64
	query := `INSERT INTO announcements (title, content) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRow(query, title, content).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}
