package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jacksandom/unitmapper/models"

	_ "github.com/lib/pq"
)

type RunRepository interface {
	CreateRun(run *models.ClassificationRun) error
	GetRunByID(id int) (*models.ClassificationRun, error)
	GetAllRuns() ([]*models.ClassificationRun, error)
	DeleteRun(id int) error
}

type PostgresRunRepository struct {
	db *sql.DB
}

func NewPostgresRunRepository(databaseURL string) (*PostgresRunRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRunRepository{db: db}, nil
}

func (r *PostgresRunRepository) CreateRun(run *models.ClassificationRun) error {
	rowsJSON, err := json.Marshal(run.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal report rows: %w", err)
	}

	query := `
		INSERT INTO unitmapper.classification_runs (mode, model, rows)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	row := r.db.QueryRow(query, run.Mode, run.Model, rowsJSON)

	if err := row.Scan(&run.ID, &run.CreatedAt); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

func (r *PostgresRunRepository) GetRunByID(id int) (*models.ClassificationRun, error) {
	query := `
		SELECT id, mode, model, rows, created_at
		FROM unitmapper.classification_runs
		WHERE id = $1`

	run := &models.ClassificationRun{}
	var rowsJSON []byte

	row := r.db.QueryRow(query, id)
	if err := row.Scan(&run.ID, &run.Mode, &run.Model, &rowsJSON, &run.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if err := json.Unmarshal(rowsJSON, &run.Rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report rows: %w", err)
	}

	return run, nil
}

func (r *PostgresRunRepository) GetAllRuns() ([]*models.ClassificationRun, error) {
	query := `
		SELECT id, mode, model, rows, created_at
		FROM unitmapper.classification_runs
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ClassificationRun
	for rows.Next() {
		run := &models.ClassificationRun{}
		var rowsJSON []byte
		if err := rows.Scan(&run.ID, &run.Mode, &run.Model, &rowsJSON, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if err := json.Unmarshal(rowsJSON, &run.Rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report rows: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

func (r *PostgresRunRepository) DeleteRun(id int) error {
	query := `DELETE FROM unitmapper.classification_runs WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("run with ID %d not found", id)
	}

	return nil
}

func (r *PostgresRunRepository) Close() error {
	return r.db.Close()
}
