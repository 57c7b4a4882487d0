package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jacksandom/unitmapper/config"
	"github.com/jacksandom/unitmapper/db"
	"github.com/jacksandom/unitmapper/models"
	"github.com/jacksandom/unitmapper/services"
	"github.com/jacksandom/unitmapper/services/categoryindex"
	"github.com/jacksandom/unitmapper/services/classifier"
)

func main() {
	mode := flag.String("mode", models.ModeStructured, "classification mode: freetext or structured")
	file := flag.String("file", "", "file with one label per line (default: labels from the unit store)")
	format := flag.String("format", "csv", "output format: csv or json")
	store := flag.Bool("store", false, "persist the run to the database")
	flag.Parse()

	cfg := config.Load()

	labels, err := loadLabels(cfg, *file)
	if err != nil {
		log.Fatalf("Failed to load labels: %v", err)
	}
	if len(labels) == 0 {
		log.Fatal("No labels to classify")
	}

	categoryService := services.NewCategoryService()

	var indexService *categoryindex.Service
	if cfg.PineconeAPIKey != "" {
		indexService, err = categoryindex.NewService(cfg.PineconeAPIKey, cfg.OpenAIAPIKey, cfg.PineconeIndexName)
		if err != nil {
			log.Fatalf("Failed to initialize category index service: %v", err)
		}
	}

	classifierService, err := classifier.NewService(cfg, categoryService, indexService)
	if err != nil {
		log.Fatalf("Failed to initialize classifier service: %v", err)
	}

	report, err := classifierService.ClassifyBatch(context.Background(), labels, *mode)
	if err != nil {
		log.Fatalf("Classification failed: %v", err)
	}

	if *store {
		if cfg.DatabaseURL == "" {
			log.Fatal("DB_URL environment variable is required with -store")
		}
		runRepo, err := db.NewPostgresRunRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize run database: %v", err)
		}
		defer runRepo.Close()

		run, err := services.NewRunService(runRepo).StoreReport(report)
		if err != nil {
			log.Fatalf("Failed to store run: %v", err)
		}
		log.Printf("[INFO] Stored classification run with ID %d", run.ID)
	}

	if err := writeReport(report, *format); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}

func loadLabels(cfg *config.Config, file string) ([]string, error) {
	if file != "" {
		return readLabelFile(file)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DB_URL environment variable is required when no -file is given")
	}

	unitRepo, err := db.NewPostgresUnitRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize unit database: %w", err)
	}
	defer unitRepo.Close()

	return services.NewUnitService(unitRepo).GetAllLabels()
}

func readLabelFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label file: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		label := strings.TrimSpace(scanner.Text())
		if label != "" {
			labels = append(labels, label)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read label file: %w", err)
	}

	return labels, nil
}

func writeReport(report *models.ClassificationReport, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)

	case "csv":
		writer := csv.NewWriter(os.Stdout)
		if err := writer.Write([]string{"label", "result", "normalized", "failed"}); err != nil {
			return err
		}
		for _, row := range report.Rows {
			record := []string{row.Label, row.Result, row.Normalized, fmt.Sprintf("%t", row.Failed)}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()

	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}
