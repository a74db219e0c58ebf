package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kadhiravan2002/AuraX/internal"
)

const recordColumns = `user_id, date, mood, energy, sleep_hours, exercise_minutes, stress_level, water_intake, created_at`

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() {
	p.pool.Close()
}

func (p *PostgresStorage) ListByUser(ctx context.Context, userID string) ([]internal.HealthRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM health_records WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query health records: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []internal.HealthRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			p.logger.Errorf("failed to scan health record: %v", err)
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (p *PostgresStorage) GetByUserDate(ctx context.Context, userID, date string) (*internal.HealthRecord, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM health_records WHERE user_id = $1 AND date = $2`, userID, date)
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (p *PostgresStorage) Upsert(ctx context.Context, record *internal.HealthRecord) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO health_records (`+recordColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		 ON CONFLICT (user_id, date) DO UPDATE SET
		   mood = EXCLUDED.mood, energy = EXCLUDED.energy, sleep_hours = EXCLUDED.sleep_hours,
		   exercise_minutes = EXCLUDED.exercise_minutes, stress_level = EXCLUDED.stress_level,
		   water_intake = EXCLUDED.water_intake`,
		record.UserID, record.Date, record.Mood, record.Energy, record.SleepHours,
		record.ExerciseMinutes, record.StressLevel, record.WaterIntake)
	if err != nil {
		p.logger.Errorf("failed to upsert health record: %v", err)
	}
	return err
}

func (p *PostgresStorage) Insert(ctx context.Context, record *internal.HealthRecord) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO health_records (`+recordColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
		record.UserID, record.Date, record.Mood, record.Energy, record.SleepHours,
		record.ExerciseMinutes, record.StressLevel, record.WaterIntake)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		p.logger.Errorf("failed to insert health record: %v", err)
	}
	return err
}

func (p *PostgresStorage) DeleteWhere(ctx context.Context, userID string, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	_, err := p.pool.Exec(ctx,
		`DELETE FROM health_records WHERE user_id = $1 AND date = ANY($2)`, userID, dates)
	if err != nil {
		p.logger.Errorf("failed to delete health records: %v", err)
	}
	return err
}

func scanRecord(row pgx.Row) (internal.HealthRecord, error) {
	var r internal.HealthRecord
	err := row.Scan(&r.UserID, &r.Date, &r.Mood, &r.Energy, &r.SleepHours,
		&r.ExerciseMinutes, &r.StressLevel, &r.WaterIntake, &r.CreatedAt)
	return r, err
}

// --- Compile-time assertions ---
var _ RecordRepository = (*PostgresStorage)(nil)
