package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadOverrides_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name", "value"}).
		AddRow("weight_low_min", 14000.0).
		AddRow("temp_high_critical", 39.0)

	mock.ExpectQuery(`SELECT name, value FROM threshold_overrides`).
		WillReturnRows(rows)

	repo := NewPostgresThresholdsRepository(db, zap.NewNop())
	overrides, err := repo.LoadOverrides(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"weight_low_min":     14000,
		"temp_high_critical": 39,
	}, overrides)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadOverrides_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT name, value FROM threshold_overrides`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "value"}))

	repo := NewPostgresThresholdsRepository(db, zap.NewNop())
	overrides, err := repo.LoadOverrides(context.Background())

	require.NoError(t, err)
	assert.Empty(t, overrides)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadOverrides_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT name, value FROM threshold_overrides`).
		WillReturnError(errors.New("relation does not exist"))

	repo := NewPostgresThresholdsRepository(db, zap.NewNop())
	overrides, err := repo.LoadOverrides(context.Background())

	assert.Error(t, err)
	assert.Nil(t, overrides)

	require.NoError(t, mock.ExpectationsWereMet())
}
