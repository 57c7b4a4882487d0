package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/jacksandom/unitmapper/models"
	"github.com/jacksandom/unitmapper/services"

	"github.com/gorilla/mux"
)

type UnitHandler struct {
	service *services.UnitService
}

func NewUnitHandler(service *services.UnitService) *UnitHandler {
	return &UnitHandler{service: service}
}

func (h *UnitHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/units", h.CreateUnit).Methods("POST")
	router.HandleFunc("/units", h.GetAllUnits).Methods("GET")
	router.HandleFunc("/units/{id}", h.GetUnit).Methods("GET")
	router.HandleFunc("/units/{id}", h.UpdateUnit).Methods("PUT")
	router.HandleFunc("/units/{id}", h.DeleteUnit).Methods("DELETE")
}

func (h *UnitHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received unit creation request")

	var req models.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode unit creation JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	unit, err := h.service.CreateUnit(&req)
	if err != nil {
		log.Printf("[ERROR] Unit creation failed: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, unit)
}

func (h *UnitHandler) GetAllUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.service.GetAllUnits()
	if err != nil {
		log.Printf("[ERROR] Failed to get units: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, units)
}

func (h *UnitHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid unit ID")
		return
	}

	unit, err := h.service.GetUnitByID(id)
	if err != nil {
		log.Printf("[ERROR] Failed to get unit %d: %v", id, err)
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, unit)
}

func (h *UnitHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid unit ID")
		return
	}

	var req models.UpdateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode unit update JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	unit, err := h.service.UpdateUnit(id, &req)
	if err != nil {
		log.Printf("[ERROR] Unit update failed for ID %d: %v", id, err)
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, unit)
}

func (h *UnitHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid unit ID")
		return
	}

	if err := h.service.DeleteUnit(id); err != nil {
		log.Printf("[ERROR] Unit deletion failed for ID %d: %v", id, err)
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UnitHandler) parseID(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	return strconv.Atoi(vars["id"])
}

func (h *UnitHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *UnitHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
