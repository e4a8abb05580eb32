package handler

import (
	"encoding/json"
	"net/http"

	"farm-market/internal/model"
	"farm-market/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FarmerHandler handles farmer-account HTTP requests.
type FarmerHandler struct {
	service service.FarmerService
	logger  zerolog.Logger
}

// NewFarmerHandler creates a new farmer handler.
func NewFarmerHandler(service service.FarmerService, logger zerolog.Logger) *FarmerHandler {
	return &FarmerHandler{
		service: service,
		logger:  logger.With().Str("handler", "farmer").Logger(),
	}
}

// Register handles POST /api/farmers/auth/register requests.
func (h *FarmerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.FarmerRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if _, err := h.service.Register(r.Context(), &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "Farmer registered successfully"})
}

// Login handles POST /api/farmers/auth/login requests.
func (h *FarmerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.TokenResponse{Token: token})
}

// GetAll handles GET /api/farmers requests.
func (h *FarmerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	farmers, err := h.service.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if farmers == nil {
		farmers = []model.Farmer{}
	}

	writeJSON(w, http.StatusOK, farmers)
}

// GetByID handles GET /api/farmers/{id} requests.
func (h *FarmerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid farmer ID", h.logger)
		return
	}

	farmer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, farmer)
}

// Create handles POST /api/farmers requests.
func (h *FarmerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.FarmerRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	farmer, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, farmer)
}

// Update handles PUT /api/farmers/{id} requests.
func (h *FarmerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid farmer ID", h.logger)
		return
	}

	var req model.FarmerRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	farmer, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, farmer)
}

// Delete handles DELETE /api/farmers/{id} requests.
func (h *FarmerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid farmer ID", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Farmer deleted successfully"})
}
