package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
	"github.com/EvgDevt/weather-app/pkg/units"
)

const dateParamLayout = "2006-01-02"

// handleCurrentWeather returns the latest reading for one city.
// Query params:
//   - city: city name (required, case-insensitive)
//   - units: "imperial" for Fahrenheit, anything else is metric
func (rm *RouteManager) handleCurrentWeather(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		writeError(w, fmt.Errorf("city parameter is required: %w", apperrors.ErrValidation))
		return
	}

	unitSystem := units.Resolve(r.URL.Query().Get("units"))

	resp, err := rm.weatherService.LatestByCity(r.Context(), city, unitSystem)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleCurrentWeatherByCities returns the latest reading per requested city.
// The "city" parameter repeats; cities without readings are omitted.
func (rm *RouteManager) handleCurrentWeatherByCities(w http.ResponseWriter, r *http.Request) {
	cities := r.URL.Query()["city"]
	if len(cities) == 0 {
		writeError(w, fmt.Errorf("at least one city parameter is required: %w", apperrors.ErrValidation))
		return
	}

	unitSystem := units.Resolve(r.URL.Query().Get("units"))

	resp, err := rm.weatherService.ByCities(r.Context(), cities, unitSystem)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleWeatherHistory returns readings between startDate and endDate,
// both dates inclusive.
func (rm *RouteManager) handleWeatherHistory(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]
	unitSystem := units.Resolve(r.URL.Query().Get("units"))

	startDate, err := time.Parse(dateParamLayout, r.URL.Query().Get("startDate"))
	if err != nil {
		writeError(w, fmt.Errorf("startDate must be formatted as %s: %w", dateParamLayout, apperrors.ErrValidation))
		return
	}

	endDate, err := time.Parse(dateParamLayout, r.URL.Query().Get("endDate"))
	if err != nil {
		writeError(w, fmt.Errorf("endDate must be formatted as %s: %w", dateParamLayout, apperrors.ErrValidation))
		return
	}

	resp, err := rm.weatherService.HistoryByCityAndDateRange(r.Context(), city, startDate, endDate, unitSystem)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleFullWeatherHistory returns the paged full history for a city.
func (rm *RouteManager) handleFullWeatherHistory(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]
	unitSystem := units.Resolve(r.URL.Query().Get("units"))

	params, err := parsePagingParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := rm.weatherService.FullHistoryByCity(r.Context(), city, params, unitSystem)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleSevenDayAverage returns the trailing seven-day average temperature.
func (rm *RouteManager) handleSevenDayAverage(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]
	unitSystem := units.Resolve(r.URL.Query().Get("units"))

	resp, err := rm.weatherService.SevenDayAverage(r.Context(), city, unitSystem)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleCreateWeather ingests one reading. Temperatures arrive in Celsius;
// the location must already exist.
func (rm *RouteManager) handleCreateWeather(w http.ResponseWriter, r *http.Request) {
	var req models.WeatherCreateRequest
	if err := rm.decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	condition, err := models.ParseWeatherCondition(req.Condition)
	if err != nil {
		writeError(w, fmt.Errorf("%v: %w", err, apperrors.ErrValidation))
		return
	}

	direction, err := models.ParseWindDirection(req.WindDirection)
	if err != nil {
		writeError(w, fmt.Errorf("%v: %w", err, apperrors.ErrValidation))
		return
	}

	location, err := rm.dbManager.FindLocationByCity(r.Context(), req.City)
	if err != nil {
		writeError(w, err)
		return
	}

	stored, err := rm.dbManager.StoreWeather(r.Context(), models.WeatherData{
		Temperature:   req.Temperature,
		WindSpeed:     req.WindSpeed,
		WindDirection: direction,
		Humidity:      req.Humidity,
		Condition:     condition,
		Location:      location,
		SensorID:      req.SensorID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, stored)
}

func parsePagingParams(r *http.Request) (models.HistoryQueryParams, error) {
	params := models.HistoryQueryParams{Page: 1, Limit: 20}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &params.Page); err != nil {
			return params, fmt.Errorf("page must be a number: %w", apperrors.ErrValidation)
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &params.Limit); err != nil {
			return params, fmt.Errorf("limit must be a number: %w", apperrors.ErrValidation)
		}
	}

	return params, nil
}
