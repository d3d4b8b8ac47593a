package controller

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "brutus/internal/errors"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type validationErrorResponse struct {
	Success bool                         `json:"success"`
	Error   string                       `json:"error"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	response := validationErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(response)
}

func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Success: false, Error: err.Error()}, logger)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Success: false,
		Error:   "an unexpected error occurred",
	}, logger)
}
