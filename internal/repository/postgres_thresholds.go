package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// PostgresThresholdsRepository reads alert-threshold overrides from the
// threshold_overrides table (name text primary key, value double precision).
type PostgresThresholdsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresThresholdsRepository(db *sql.DB, logger *zap.Logger) *PostgresThresholdsRepository {
	return &PostgresThresholdsRepository{db: db, logger: logger}
}

var _ ThresholdsRepository = (*PostgresThresholdsRepository)(nil)

func (r *PostgresThresholdsRepository) LoadOverrides(ctx context.Context) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, value FROM threshold_overrides`)
	if err != nil {
		return nil, fmt.Errorf("failed to query threshold overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(map[string]float64)
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan threshold override: %w", err)
		}
		overrides[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate threshold overrides: %w", err)
	}
	return overrides, nil
}
