package main

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
)

// handleListSensors returns sensors, optionally filtered by country/city.
func (rm *RouteManager) handleListSensors(w http.ResponseWriter, r *http.Request) {
	filter := models.SensorFilter{
		Country: r.URL.Query().Get("country"),
		City:    r.URL.Query().Get("city"),
	}

	sensors, err := rm.dbManager.ListSensors(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sensors)
}

func (rm *RouteManager) handleGetSensor(w http.ResponseWriter, r *http.Request) {
	id, err := sensorIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sensor, err := rm.dbManager.GetSensor(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sensor)
}

// handleCreateSensor registers a sensor at an existing location. The
// location is resolved by city and country and must already be known.
func (rm *RouteManager) handleCreateSensor(w http.ResponseWriter, r *http.Request) {
	var req models.SensorCreateRequest
	if err := rm.decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	location, err := rm.dbManager.FindLocationByCityAndCountry(r.Context(), req.Location.City, req.Location.Country)
	if err != nil {
		writeError(w, err)
		return
	}

	createdBy := ""
	if principal := GetUserFromContext(r.Context()); principal != nil {
		createdBy = principal.Email
	}

	sensor, err := rm.dbManager.CreateSensor(r.Context(), models.Sensor{
		Model:     req.Sensor.Model,
		Location:  location,
		CreatedBy: createdBy,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, sensor)
}

func (rm *RouteManager) handleDeleteSensor(w http.ResponseWriter, r *http.Request) {
	id, err := sensorIDVar(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := rm.dbManager.DeleteSensor(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func sensorIDVar(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["sensorId"])
	if err != nil {
		return uuid.Nil, fmt.Errorf("sensor id must be a UUID: %w", apperrors.ErrValidation)
	}
	return id, nil
}
