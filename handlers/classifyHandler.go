package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/jacksandom/unitmapper/models"
	"github.com/jacksandom/unitmapper/services"
	"github.com/jacksandom/unitmapper/services/classifier"

	"github.com/gorilla/mux"
)

type ClassifyHandler struct {
	classifierService *classifier.Service
	unitService       *services.UnitService
	runService        *services.RunService
	categoryService   *services.CategoryService
}

func NewClassifyHandler(classifierService *classifier.Service, unitService *services.UnitService, runService *services.RunService, categoryService *services.CategoryService) *ClassifyHandler {
	return &ClassifyHandler{
		classifierService: classifierService,
		unitService:       unitService,
		runService:        runService,
		categoryService:   categoryService,
	}
}

func (h *ClassifyHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/classify", h.ClassifyLabels).Methods("POST")
	router.HandleFunc("/classify/units", h.ClassifyStoredUnits).Methods("POST")
	router.HandleFunc("/categories", h.GetCategories).Methods("GET")
	router.HandleFunc("/runs", h.GetAllRuns).Methods("GET")
	router.HandleFunc("/runs/{id}", h.GetRun).Methods("GET")
	router.HandleFunc("/runs/{id}", h.DeleteRun).Methods("DELETE")
}

// ClassifyLabels classifies an ad-hoc list of labels from the request body.
func (h *ClassifyHandler) ClassifyLabels(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received classification request")

	var req models.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode classification request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if len(req.Labels) == 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "At least one label is required")
		return
	}

	h.classify(w, r, req.Labels, req.Mode)
}

// ClassifyStoredUnits classifies every label in the unit store, in stored
// order.
func (h *ClassifyHandler) ClassifyStoredUnits(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received stored-unit classification request")

	// The body is optional here; an empty body runs the default mode.
	var req models.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		log.Printf("[ERROR] Failed to decode classification request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	labels, err := h.unitService.GetAllLabels()
	if err != nil {
		log.Printf("[ERROR] Failed to load stored unit labels: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(labels) == 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "No stored units to classify")
		return
	}

	h.classify(w, r, labels, req.Mode)
}

func (h *ClassifyHandler) classify(w http.ResponseWriter, r *http.Request, labels []string, mode string) {
	if mode == "" {
		mode = models.ModeStructured
	}

	report, err := h.classifierService.ClassifyBatch(r.Context(), labels, mode)
	if err != nil {
		log.Printf("[ERROR] Classification batch failed: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	response := models.ClassifyResponse{Report: report}

	if h.runService != nil {
		run, err := h.runService.StoreReport(report)
		if err != nil {
			log.Printf("[WARN] Failed to store classification run: %v", err)
		} else {
			response.RunID = run.ID
		}
	}

	log.Printf("[INFO] Classification request completed with %d rows", len(report.Rows))
	h.writeJSONResponse(w, http.StatusOK, response)
}

func (h *ClassifyHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.categoryService.Categories())
}

func (h *ClassifyHandler) GetAllRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.runService.GetAllRuns()
	if err != nil {
		log.Printf("[ERROR] Failed to get runs: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, runs)
}

func (h *ClassifyHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid run ID")
		return
	}

	run, err := h.runService.GetRunByID(id)
	if err != nil {
		log.Printf("[ERROR] Failed to get run %d: %v", id, err)
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, run)
}

func (h *ClassifyHandler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid run ID")
		return
	}

	if err := h.runService.DeleteRun(id); err != nil {
		log.Printf("[ERROR] Run deletion failed for ID %d: %v", id, err)
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ClassifyHandler) parseID(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	return strconv.Atoi(vars["id"])
}

func (h *ClassifyHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *ClassifyHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
