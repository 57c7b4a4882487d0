package db

import (
	"database/sql"
	"fmt"

	"github.com/jacksandom/unitmapper/models"

	_ "github.com/lib/pq"
)

type UnitRepository interface {
	CreateUnit(unit *models.DeliveryUnit) error
	GetUnitByID(id int) (*models.DeliveryUnit, error)
	GetAllUnits() ([]*models.DeliveryUnit, error)
	UpdateUnit(id int, label string) error
	DeleteUnit(id int) error
}

type PostgresUnitRepository struct {
	db *sql.DB
}

func NewPostgresUnitRepository(databaseURL string) (*PostgresUnitRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresUnitRepository{db: db}, nil
}

func (r *PostgresUnitRepository) CreateUnit(unit *models.DeliveryUnit) error {
	query := `
		INSERT INTO unitmapper.delivery_units (label)
		VALUES ($1)
		RETURNING id, created_at, updated_at`

	row := r.db.QueryRow(query, unit.Label)

	if err := row.Scan(&unit.ID, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create unit: %w", err)
	}

	return nil
}

func (r *PostgresUnitRepository) GetUnitByID(id int) (*models.DeliveryUnit, error) {
	query := `
		SELECT id, label, created_at, updated_at
		FROM unitmapper.delivery_units
		WHERE id = $1`

	unit := &models.DeliveryUnit{}
	row := r.db.QueryRow(query, id)

	if err := row.Scan(&unit.ID, &unit.Label, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("unit with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}

	return unit, nil
}

// GetAllUnits returns units ordered by ID so the classification input
// sequence is stable between runs.
func (r *PostgresUnitRepository) GetAllUnits() ([]*models.DeliveryUnit, error) {
	query := `
		SELECT id, label, created_at, updated_at
		FROM unitmapper.delivery_units
		ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []*models.DeliveryUnit
	for rows.Next() {
		unit := &models.DeliveryUnit{}
		if err := rows.Scan(&unit.ID, &unit.Label, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate units: %w", err)
	}

	return units, nil
}

func (r *PostgresUnitRepository) UpdateUnit(id int, label string) error {
	query := `
		UPDATE unitmapper.delivery_units
		SET label = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := r.db.Exec(query, label, id)
	if err != nil {
		return fmt.Errorf("failed to update unit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("unit with ID %d not found", id)
	}

	return nil
}

func (r *PostgresUnitRepository) DeleteUnit(id int) error {
	query := `DELETE FROM unitmapper.delivery_units WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("unit with ID %d not found", id)
	}

	return nil
}

func (r *PostgresUnitRepository) Close() error {
	return r.db.Close()
}
