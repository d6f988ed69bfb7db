package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hivewatch/internal/domain"

	"go.uber.org/zap"
)

// PostgresReadingsRepository implements ReadingsRepository against the
// readings table.
type PostgresReadingsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresReadingsRepository(db *sql.DB, logger *zap.Logger) *PostgresReadingsRepository {
	return &PostgresReadingsRepository{db: db, logger: logger}
}

var _ ReadingsRepository = (*PostgresReadingsRepository)(nil)

const readingColumns = "id, weight, temperature, humidity, audio, timestamp"

func (r *PostgresReadingsRepository) Insert(ctx context.Context, rd *domain.Reading) error {
	query := `
		INSERT INTO readings (weight, temperature, humidity, audio, timestamp)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		RETURNING id, timestamp`

	var ts interface{}
	if !rd.Timestamp.IsZero() {
		ts = rd.Timestamp
	}

	err := r.db.QueryRowContext(ctx, query,
		rd.Weight, rd.Temperature, rd.Humidity, rd.Audio, ts,
	).Scan(&rd.ID, &rd.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}
	return nil
}

func (r *PostgresReadingsRepository) Latest(ctx context.Context) (*domain.Reading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM readings
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`

	rd, err := scanReading(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest reading: %w", err)
	}
	return rd, nil
}

// Range applies the calendar-date and time-of-day filters as two independent
// predicates, not one continuous timestamp interval. This is deliberate: it
// supports recurring daily windows ("daytime only across this date span").
// The time-of-day comparison truncates to whole seconds so a NOW()-assigned
// timestamp with microseconds still matches an end bound on that second,
// the same way HistoryQuery.Matches compares.
func (r *PostgresReadingsRepository) Range(ctx context.Context, q domain.HistoryQuery, limit int) ([]domain.Reading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM readings
		WHERE timestamp::date BETWEEN $1 AND $2
		  AND date_trunc('second', timestamp)::time BETWEEN $3 AND $4
		ORDER BY timestamp ASC, id ASC
		LIMIT $5`

	rows, err := r.db.QueryContext(ctx, query,
		q.StartDate, q.EndDate, q.StartTime, q.EndTime, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings range: %w", err)
	}
	defer rows.Close()

	var results []domain.Reading
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		results = append(results, *rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}
	return results, nil
}

func (r *PostgresReadingsRepository) Extent(ctx context.Context) (domain.Extent, error) {
	query := `SELECT MIN(timestamp), MAX(timestamp) FROM readings`

	var min, max sql.NullTime
	if err := r.db.QueryRowContext(ctx, query).Scan(&min, &max); err != nil {
		return domain.Extent{}, fmt.Errorf("failed to query readings extent: %w", err)
	}

	var ext domain.Extent
	if min.Valid {
		t := min.Time
		ext.Min = &t
	}
	if max.Valid {
		t := max.Time
		ext.Max = &t
	}
	return ext, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReading(row rowScanner) (*domain.Reading, error) {
	var rd domain.Reading
	var humidity sql.NullFloat64
	var audio sql.NullInt64
	if err := row.Scan(&rd.ID, &rd.Weight, &rd.Temperature, &humidity, &audio, &rd.Timestamp); err != nil {
		return nil, err
	}
	if humidity.Valid {
		h := humidity.Float64
		rd.Humidity = &h
	}
	if audio.Valid {
		a := int(audio.Int64)
		rd.Audio = &a
	}
	return &rd, nil
}
