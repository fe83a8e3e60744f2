package main

import (
	"net/http"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
)

func (rm *RouteManager) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationRequest
	if err := rm.decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := rm.authService.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (rm *RouteManager) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req models.AuthenticationRequest
	if err := rm.decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, err := rm.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.AuthenticationResponse{Token: token})
}

// handleLogout revokes the presented bearer token. The middleware accepted
// it already, so revocation cannot fail.
func (rm *RouteManager) handleLogout(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := extractBearerToken(r)
	if !ok {
		writeError(w, apperrors.ErrInvalidToken)
		return
	}

	rm.authService.Logout(tokenString)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
