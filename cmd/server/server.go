package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/jacksandom/unitmapper/config"
	"github.com/jacksandom/unitmapper/db"
	"github.com/jacksandom/unitmapper/handlers"
	"github.com/jacksandom/unitmapper/services"
	"github.com/jacksandom/unitmapper/services/categoryindex"
	"github.com/jacksandom/unitmapper/services/classifier"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	if cfg.Provider == "anthropic" && cfg.AnthropicAPIKey == "" {
		log.Fatal("ANTHROPIC_API_KEY environment variable is required for the anthropic provider")
	}

	if cfg.Provider != "anthropic" && cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}

	unitRepo, err := db.NewPostgresUnitRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize unit database: %v", err)
	}
	defer unitRepo.Close()

	runRepo, err := db.NewPostgresRunRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize run database: %v", err)
	}
	defer runRepo.Close()

	unitService := services.NewUnitService(unitRepo)
	unitHandler := handlers.NewUnitHandler(unitService)

	runService := services.NewRunService(runRepo)
	categoryService := services.NewCategoryService()

	var indexService *categoryindex.Service
	if cfg.PineconeAPIKey != "" {
		indexService, err = categoryindex.NewService(cfg.PineconeAPIKey, cfg.OpenAIAPIKey, cfg.PineconeIndexName)
		if err != nil {
			log.Fatalf("Failed to initialize category index service: %v", err)
		}
	} else {
		log.Printf("[INFO] PINECONE_API_KEY not set, free-text prompts will carry the full category list")
	}

	classifierService, err := classifier.NewService(cfg, categoryService, indexService)
	if err != nil {
		log.Fatalf("Failed to initialize classifier service: %v", err)
	}
	classifyHandler := handlers.NewClassifyHandler(classifierService, unitService, runService, categoryService)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	unitHandler.RegisterRoutes(router)
	classifyHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
