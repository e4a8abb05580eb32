package handler

import (
	"encoding/json"
	"net/http"

	"farm-market/internal/middleware"
	"farm-market/internal/model"
	"farm-market/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BuyerHandler handles buyer-account HTTP requests.
type BuyerHandler struct {
	service service.BuyerService
	logger  zerolog.Logger
}

// NewBuyerHandler creates a new buyer handler.
func NewBuyerHandler(service service.BuyerService, logger zerolog.Logger) *BuyerHandler {
	return &BuyerHandler{
		service: service,
		logger:  logger.With().Str("handler", "buyer").Logger(),
	}
}

// Register handles POST /api/buyers/register requests.
func (h *BuyerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.BuyerRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if _, err := h.service.Register(r.Context(), &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "Buyer registered successfully"})
}

// Login handles POST /api/buyers/login requests.
func (h *BuyerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetAll handles GET /api/buyers requests.
func (h *BuyerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	buyers, err := h.service.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if buyers == nil {
		buyers = []model.Buyer{}
	}

	writeJSON(w, http.StatusOK, buyers)
}

// GetByID handles GET /api/buyers/{id} requests. Buyers may only read
// their own record.
func (h *BuyerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.selfOnly(w, r)
	if !ok {
		return
	}

	buyer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, buyer)
}

// Update handles PUT /api/buyers/{id} requests. Buyers may only update
// their own record.
func (h *BuyerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.selfOnly(w, r)
	if !ok {
		return
	}

	var req model.BuyerRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	buyer, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, buyer)
}

// Delete handles DELETE /api/buyers/{id} requests. Buyers may only
// delete their own record.
func (h *BuyerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.selfOnly(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Buyer deleted successfully"})
}

// selfOnly parses the path id and rejects the request unless it matches
// the authenticated buyer.
func (h *BuyerHandler) selfOnly(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid buyer ID", h.logger)
		return uuid.Nil, false
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "not authenticated", h.logger)
		return uuid.Nil, false
	}

	if identity.UserID != id {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "access denied", h.logger)
		return uuid.Nil, false
	}

	return id, true
}
