package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"chat-relay/internal/logger"
	"chat-relay/internal/middleware"
	"chat-relay/internal/models"
	"chat-relay/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

// handleServiceError is the single point where relay errors become responses.
// Only validation failures are client errors.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())

	var (
		valErr   *services.ValidationError
		upErr    *services.UpstreamError
		emptyErr *services.EmptyResponseError
		trErr    *services.TransportError
	)
	switch {
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusBadRequest, errorResp(valErr.Error()))
		return
	case errors.As(err, &upErr):
		logger.Errorw("upstream rejected request", "request_id", requestID, "upstream_status", upErr.StatusCode)
	case errors.As(err, &emptyErr):
		logger.Warnw("upstream returned no text", "request_id", requestID)
	case errors.As(err, &trErr):
		logger.Errorw("upstream call failed", "request_id", requestID, "error", trErr.Err)
	default:
		logger.Errorw("unexpected chat error", "request_id", requestID, "error", err)
	}
	writeJSON(w, http.StatusInternalServerError, errorResp(err.Error()))
}
