// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/alchemorsel/planner/pkg/errors"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool                    `json:"success"`
	Data    interface{}             `json:"data,omitempty"`
	Error   *apperrors.ErrorDetails `json:"error,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// Validator validates decoded request bodies
type Validator interface {
	ValidateStruct(s interface{}) error
}

// WriteJSON writes a success envelope
func WriteJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// WriteError maps err to its status code and writes an error envelope
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(err, "Internal server error")
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
			zap.String("stack", appErr.StackTrace),
		)
	}

	response := apperrors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context()))
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   &response.Error,
		Message: appErr.Message,
	})
}

func writeJSON(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

// decodeJSON reads a JSON body into dst and validates it
func decodeJSON(r *http.Request, v Validator, dst interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewBadRequestError("Request body is required")
		}
		return apperrors.NewBadRequestError("Invalid JSON body").WithCause(err)
	}

	return v.ValidateStruct(dst)
}
