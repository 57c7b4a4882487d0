package main

import (
	"context"
	"log"

	"github.com/jacksandom/unitmapper/config"
	"github.com/jacksandom/unitmapper/models"
	"github.com/jacksandom/unitmapper/services/categoryindex"
)

func main() {
	log.Printf("[INFO] Starting category indexing process")

	cfg := config.Load()

	if cfg.PineconeAPIKey == "" {
		log.Fatal("PINECONE_API_KEY environment variable is required")
	}

	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}

	indexService, err := categoryindex.NewService(cfg.PineconeAPIKey, cfg.OpenAIAPIKey, cfg.PineconeIndexName)
	if err != nil {
		log.Fatalf("Failed to initialize category index service: %v", err)
	}

	if err := indexService.IndexCategories(context.Background(), models.CanonicalCategories); err != nil {
		log.Fatalf("Failed to index categories: %v", err)
	}

	log.Printf("[INFO] Indexed %d canonical categories into %s", len(models.CanonicalCategories), cfg.PineconeIndexName)
}
