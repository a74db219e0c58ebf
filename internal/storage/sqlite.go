package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Kadhiravan2002/AuraX/internal"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS health_records (
	user_id          TEXT NOT NULL,
	date             TEXT NOT NULL,
	mood             REAL,
	energy           REAL,
	sleep_hours      REAL,
	exercise_minutes REAL,
	stress_level     REAL,
	water_intake     REAL,
	created_at       TEXT NOT NULL,
	PRIMARY KEY (user_id, date)
)`

// SQLiteStorage is the embedded-database backend, for single-host deployments
// that want durability without running postgres.
type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStorage(path string, logger internal.Logger) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Errorf("failed to open sqlite database: %v", err)
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		logger.Errorf("failed to ensure sqlite schema: %v", err)
		db.Close()
		return nil, err
	}
	return &SQLiteStorage{db: db, logger: logger}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) ListByUser(ctx context.Context, userID string) ([]internal.HealthRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM health_records WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		s.logger.Errorf("failed to query health records: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []internal.HealthRecord
	for rows.Next() {
		var r internal.HealthRecord
		var createdAt string
		if err := rows.Scan(&r.UserID, &r.Date, &r.Mood, &r.Energy, &r.SleepHours,
			&r.ExerciseMinutes, &r.StressLevel, &r.WaterIntake, &createdAt); err != nil {
			s.logger.Errorf("failed to scan health record: %v", err)
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteStorage) GetByUserDate(ctx context.Context, userID, date string) (*internal.HealthRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM health_records WHERE user_id = ? AND date = ?`, userID, date)
	var r internal.HealthRecord
	var createdAt string
	err := row.Scan(&r.UserID, &r.Date, &r.Mood, &r.Energy, &r.SleepHours,
		&r.ExerciseMinutes, &r.StressLevel, &r.WaterIntake, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}

func (s *SQLiteStorage) Upsert(ctx context.Context, record *internal.HealthRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO health_records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET
		   mood = excluded.mood, energy = excluded.energy, sleep_hours = excluded.sleep_hours,
		   exercise_minutes = excluded.exercise_minutes, stress_level = excluded.stress_level,
		   water_intake = excluded.water_intake`,
		record.UserID, record.Date, record.Mood, record.Energy, record.SleepHours,
		record.ExerciseMinutes, record.StressLevel, record.WaterIntake,
		time.Now().Format(time.RFC3339))
	if err != nil {
		s.logger.Errorf("failed to upsert health record: %v", err)
	}
	return err
}

func (s *SQLiteStorage) Insert(ctx context.Context, record *internal.HealthRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO health_records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.UserID, record.Date, record.Mood, record.Energy, record.SleepHours,
		record.ExerciseMinutes, record.StressLevel, record.WaterIntake,
		time.Now().Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return ErrDuplicate
		}
		s.logger.Errorf("failed to insert health record: %v", err)
	}
	return err
}

func (s *SQLiteStorage) DeleteWhere(ctx context.Context, userID string, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	placeholders := strings.Repeat(",?", len(dates))[1:]
	args := make([]interface{}, 0, len(dates)+1)
	args = append(args, userID)
	for _, d := range dates {
		args = append(args, d)
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM health_records WHERE user_id = ? AND date IN (`+placeholders+`)`, args...)
	if err != nil {
		s.logger.Errorf("failed to delete health records: %v", err)
	}
	return err
}

// --- Compile-time assertions ---
var _ RecordRepository = (*SQLiteStorage)(nil)
