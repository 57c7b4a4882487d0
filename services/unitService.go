package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/jacksandom/unitmapper/db"
	"github.com/jacksandom/unitmapper/models"

	"github.com/samber/lo"
)

type UnitService struct {
	repo db.UnitRepository
}

func NewUnitService(repo db.UnitRepository) *UnitService {
	return &UnitService{repo: repo}
}

func (s *UnitService) CreateUnit(req *models.CreateUnitRequest) (*models.DeliveryUnit, error) {
	log.Printf("[INFO] Starting unit creation")

	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		log.Printf("[ERROR] Unit creation validation failed: empty label")
		return nil, fmt.Errorf("label is required")
	}

	unit := &models.DeliveryUnit{Label: label}

	if err := s.repo.CreateUnit(unit); err != nil {
		log.Printf("[ERROR] Failed to create unit in repository: %v", err)
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}

	log.Printf("[INFO] Successfully created unit with ID %d", unit.ID)
	return unit, nil
}

func (s *UnitService) GetUnitByID(id int) (*models.DeliveryUnit, error) {
	if id <= 0 {
		log.Printf("[ERROR] Invalid unit ID provided: %d", id)
		return nil, fmt.Errorf("invalid unit ID: %d", id)
	}

	unit, err := s.repo.GetUnitByID(id)
	if err != nil {
		log.Printf("[ERROR] Failed to get unit by ID %d: %v", id, err)
		return nil, err
	}

	return unit, nil
}

func (s *UnitService) GetAllUnits() ([]*models.DeliveryUnit, error) {
	log.Printf("[INFO] Starting get all units")

	units, err := s.repo.GetAllUnits()
	if err != nil {
		log.Printf("[ERROR] Failed to get all units: %v", err)
		return nil, fmt.Errorf("failed to get units: %w", err)
	}

	log.Printf("[INFO] Successfully retrieved %d units", len(units))
	return units, nil
}

// GetAllLabels returns the ordered label strings of every stored unit, the
// input sequence a classification batch runs over.
func (s *UnitService) GetAllLabels() ([]string, error) {
	units, err := s.GetAllUnits()
	if err != nil {
		return nil, err
	}

	labels := lo.Map(units, func(unit *models.DeliveryUnit, _ int) string {
		return unit.Label
	})

	return labels, nil
}

func (s *UnitService) UpdateUnit(id int, req *models.UpdateUnitRequest) (*models.DeliveryUnit, error) {
	log.Printf("[INFO] Starting update unit with ID %d", id)

	if id <= 0 {
		log.Printf("[ERROR] Invalid unit ID provided for update: %d", id)
		return nil, fmt.Errorf("invalid unit ID: %d", id)
	}

	if req == nil || req.Label == nil {
		log.Printf("[ERROR] No valid updates provided for unit ID %d", id)
		return nil, fmt.Errorf("label must be provided for update")
	}

	label := strings.TrimSpace(*req.Label)
	if label == "" {
		log.Printf("[ERROR] Empty label provided for unit ID %d", id)
		return nil, fmt.Errorf("label cannot be empty")
	}

	if err := s.repo.UpdateUnit(id, label); err != nil {
		log.Printf("[ERROR] Failed to update unit ID %d in repository: %v", id, err)
		return nil, err
	}

	log.Printf("[INFO] Successfully updated unit with ID %d", id)
	return s.repo.GetUnitByID(id)
}

func (s *UnitService) DeleteUnit(id int) error {
	log.Printf("[INFO] Starting delete unit with ID %d", id)

	if id <= 0 {
		log.Printf("[ERROR] Invalid unit ID provided for deletion: %d", id)
		return fmt.Errorf("invalid unit ID: %d", id)
	}

	if err := s.repo.DeleteUnit(id); err != nil {
		log.Printf("[ERROR] Failed to delete unit ID %d: %v", id, err)
		return err
	}

	log.Printf("[INFO] Successfully deleted unit with ID %d", id)
	return nil
}
