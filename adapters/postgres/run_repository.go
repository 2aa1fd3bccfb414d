package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ixscreen/domain/core"
	"ixscreen/models"
	"ixscreen/ports"

	"github.com/jmoiron/sqlx"
)

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// EnsureSchema creates the runs table if it does not exist
func EnsureSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS screening_runs (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			heredity TEXT NOT NULL,
			n_rows INT NOT NULL,
			n_cols INT NOT NULL,
			r1 INT NOT NULL,
			r2 INT NOT NULL,
			main_pool JSONB NOT NULL,
			selected_mains JSONB NOT NULL,
			ranking JSONB NOT NULL,
			report TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

// SaveRun inserts a completed screening run
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, run *models.ScreeningRun) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO screening_runs (id, created_at, heredity, n_rows, n_cols, r1, r2, main_pool, selected_mains, ranking, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, run.ID, run.CreatedAt, run.Heredity, run.Rows, run.Cols, run.R1, run.R2,
		run.MainPool, run.SelectedMains, run.Ranking, run.Report)
	return err
}

// GetRun retrieves a run by ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*models.ScreeningRun, error) {
	var run models.ScreeningRun
	err := r.db.GetContext(ctx, &run, `
		SELECT id, created_at, heredity, n_rows, n_cols, r1, r2, main_pool, selected_mains, ranking, report
		FROM screening_runs
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns runs newest first, optionally limited
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]*models.ScreeningRun, error) {
	query := `
		SELECT id, created_at, heredity, n_rows, n_cols, r1, r2, main_pool, selected_mains, ranking, report
		FROM screening_runs
		ORDER BY created_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	var runs []*models.ScreeningRun
	if err := r.db.SelectContext(ctx, &runs, query, args...); err != nil {
		return nil, err
	}
	return runs, nil
}
