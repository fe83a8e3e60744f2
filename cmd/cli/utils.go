package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
)

type contextKey string

const (
	dbManagerContextKey contextKey = "dbManager"
	userContextKey      contextKey = "user"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// errorResponse is the error body shape shared by all endpoints.
type errorResponse struct {
	Code             int    `json:"code"`
	ErrorDescription string `json:"error_description"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps the error kind onto an HTTP status. Internal details are
// logged, never returned to the client.
func writeError(w http.ResponseWriter, err error) {
	var status int
	var description string

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		description = "Requested resource was not found"
	case errors.Is(err, apperrors.ErrValidation), errors.As(err, &validationErrs):
		status = http.StatusBadRequest
		description = err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status = http.StatusBadRequest
		description = "Resource already exists"
	case errors.Is(err, apperrors.ErrDataIntegrity):
		status = http.StatusBadRequest
		description = "Operation conflicts with existing data"
	case errors.Is(err, apperrors.ErrBadCredentials):
		status = http.StatusUnauthorized
		description = "Invalid email or password"
	case errors.Is(err, apperrors.ErrInvalidToken):
		status = http.StatusUnauthorized
		description = "Invalid or expired token"
	case errors.Is(err, apperrors.ErrAccessDenied):
		status = http.StatusForbidden
		description = "Access denied"
	default:
		status = http.StatusInternalServerError
		description = "Internal server error"
		log.Printf("❌ Internal error: %v", err)
	}

	respondJSON(w, status, errorResponse{Code: status, ErrorDescription: description})
}

// decodeAndValidate parses a JSON body and runs struct validation on it.
func (rm *RouteManager) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.ErrValidation
	}
	if err := rm.validate.Struct(dst); err != nil {
		return err
	}
	return nil
}
