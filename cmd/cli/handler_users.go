package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/auth"
	"github.com/EvgDevt/weather-app/pkg/models"
)

// handleListUsers returns a filtered page of accounts.
// Query params: email, lastname (substring match), createdAt (RFC3339),
// page, limit.
func (rm *RouteManager) handleListUsers(w http.ResponseWriter, r *http.Request) {
	filter := models.UserSearchFilter{
		Email:    r.URL.Query().Get("email"),
		Lastname: r.URL.Query().Get("lastname"),
	}

	if raw := r.URL.Query().Get("createdAt"); raw != "" {
		createdAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, fmt.Errorf("createdAt must be RFC3339: %w", apperrors.ErrValidation))
			return
		}
		filter.CreatedAt = &createdAt
	}

	params, err := parsePagingParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := params.Validate(); err != nil {
		writeError(w, fmt.Errorf("%v: %w", err, apperrors.ErrValidation))
		return
	}

	users, err := rm.dbManager.ListUsers(r.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].PublicView())
	}

	respondJSON(w, http.StatusOK, responses)
}

// handleCreateUser creates an account with an explicit role. Unlike
// self-registration this is an admin operation, so ADMIN is allowed.
func (rm *RouteManager) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreateEditRequest
	if err := rm.decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Password == "" {
		writeError(w, fmt.Errorf("password is required: %w", apperrors.ErrValidation))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := rm.dbManager.CreateUser(r.Context(), models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Role:         req.Role,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created.PublicView())
}

func (rm *RouteManager) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := rm.dbManager.FindUserByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := user.PublicView()

	locations, err := rm.dbManager.ListUserLocations(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	resp.Locations = locations

	respondJSON(w, http.StatusOK, resp)
}

func (rm *RouteManager) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.UserCreateEditRequest
	if err := rm.decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	// An empty password keeps the stored credential.
	var hash string
	if req.Password != "" {
		hash, err = auth.HashPassword(req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	updated, err := rm.dbManager.UpdateUser(r.Context(), models.User{
		ID:           id,
		Email:        req.Email,
		PasswordHash: hash,
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Role:         req.Role,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated.PublicView())
}

func (rm *RouteManager) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := rm.dbManager.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (rm *RouteManager) handleListUserLocations(w http.ResponseWriter, r *http.Request) {
	id, err := userIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := rm.dbManager.FindUserByID(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	locations, err := rm.dbManager.ListUserLocations(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, locations)
}

// handleAddUserLocation attaches an existing location to an account.
func (rm *RouteManager) handleAddUserLocation(w http.ResponseWriter, r *http.Request) {
	id, err := userIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.LocationRequest
	if err := rm.decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	location, err := rm.dbManager.FindLocationByCityAndCountry(r.Context(), req.City, req.Country)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := rm.dbManager.AddUserLocation(r.Context(), id, location.ID); err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, location)
}

func userIDVar(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, fmt.Errorf("user id must be a number: %w", apperrors.ErrValidation)
	}
	return id, nil
}
