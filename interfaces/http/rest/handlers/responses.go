package handlers

import (
	"encoding/json"
	"net/http"

	pkgerrors "peersphere-backend/pkg/errors"

	"go.uber.org/zap"
)

func respondJSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func respondError(logger *zap.Logger, w http.ResponseWriter, status int, code, message string) {
	respondJSON(logger, w, status, map[string]interface{}{
		"error":   true,
		"code":    code,
		"message": message,
	})
}

// respondAppError maps a domain error to its HTTP status and error
// code; anything unrecognized becomes a generic 500
func respondAppError(logger *zap.Logger, w http.ResponseWriter, err error) {
	appErr := pkgerrors.GetAppError(err)
	if appErr == nil {
		respondError(logger, w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}
	respondError(logger, w, appErr.HTTPStatus, appErr.Code, appErr.Message)
}
