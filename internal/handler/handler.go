package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"farm-market/internal/model"

	"github.com/rs/zerolog"
)

// messageResponse is a simple confirmation payload.
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service error onto the HTTP taxonomy:
// missing entities become 404, ownership mismatches 403, business-rule
// violations 400, and everything else a generic 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	status := http.StatusBadRequest
	switch domainErr.Code {
	case model.ErrCodeFarmerNotFound, model.ErrCodeBuyerNotFound,
		model.ErrCodeProductNotFound, model.ErrCodeOrderNotFound:
		status = http.StatusNotFound
	case model.ErrCodeNotOwner, model.ErrCodeForbidden:
		status = http.StatusForbidden
	}

	writeError(w, status, domainErr.Code, domainErr.Message, logger)
}
