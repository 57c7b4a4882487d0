package services

import (
	"fmt"
	"log"

	"github.com/jacksandom/unitmapper/db"
	"github.com/jacksandom/unitmapper/models"
)

type RunService struct {
	repo db.RunRepository
}

func NewRunService(repo db.RunRepository) *RunService {
	return &RunService{repo: repo}
}

// StoreReport persists the report of a completed batch so past runs can be
// reviewed later.
func (s *RunService) StoreReport(report *models.ClassificationReport) (*models.ClassificationRun, error) {
	log.Printf("[INFO] Storing classification run with %d rows", len(report.Rows))

	if len(report.Rows) == 0 {
		return nil, fmt.Errorf("report has no rows")
	}

	run := &models.ClassificationRun{
		Mode:  report.Mode,
		Model: report.Model,
		Rows:  report.Rows,
	}

	if err := s.repo.CreateRun(run); err != nil {
		log.Printf("[ERROR] Failed to store classification run: %v", err)
		return nil, fmt.Errorf("failed to store run: %w", err)
	}

	log.Printf("[INFO] Successfully stored classification run with ID %d", run.ID)
	return run, nil
}

func (s *RunService) GetRunByID(id int) (*models.ClassificationRun, error) {
	if id <= 0 {
		log.Printf("[ERROR] Invalid run ID provided: %d", id)
		return nil, fmt.Errorf("invalid run ID: %d", id)
	}

	run, err := s.repo.GetRunByID(id)
	if err != nil {
		log.Printf("[ERROR] Failed to get run by ID %d: %v", id, err)
		return nil, err
	}

	return run, nil
}

func (s *RunService) GetAllRuns() ([]*models.ClassificationRun, error) {
	log.Printf("[INFO] Starting get all runs")

	runs, err := s.repo.GetAllRuns()
	if err != nil {
		log.Printf("[ERROR] Failed to get all runs: %v", err)
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}

	log.Printf("[INFO] Successfully retrieved %d runs", len(runs))
	return runs, nil
}

func (s *RunService) DeleteRun(id int) error {
	log.Printf("[INFO] Starting delete run with ID %d", id)

	if id <= 0 {
		log.Printf("[ERROR] Invalid run ID provided for deletion: %d", id)
		return fmt.Errorf("invalid run ID: %d", id)
	}

	if err := s.repo.DeleteRun(id); err != nil {
		log.Printf("[ERROR] Failed to delete run ID %d: %v", id, err)
		return err
	}

	log.Printf("[INFO] Successfully deleted run with ID %d", id)
	return nil
}
