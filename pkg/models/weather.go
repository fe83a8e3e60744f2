package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WeatherData is one persisted measurement tied to a location.
// Temperature is always stored in Celsius regardless of how clients
// ask to see it.
type WeatherData struct {
	ID            int              `json:"id"`
	Temperature   float64          `json:"temperature"`
	WindSpeed     float64          `json:"wind_speed"`
	WindDirection WindDirection    `json:"wind_direction"`
	Humidity      float64          `json:"humidity"`
	Condition     WeatherCondition `json:"weather_condition"`
	CreatedAt     time.Time        `json:"created_at"`
	Location      Location         `json:"location"`
	SensorID      *uuid.UUID       `json:"sensor_id,omitempty"`
}

// WeatherResponse is the external shape of a measurement, with the derived
// feels-like temperature populated and unit conversion already applied.
type WeatherResponse struct {
	Temperature          float64          `json:"temperature"`
	FeelsLikeTemperature float64          `json:"feels_like_temperature"`
	WindSpeed            float64          `json:"wind_speed"`
	WindDirection        WindDirection    `json:"wind_direction"`
	Humidity             float64          `json:"humidity"`
	WeatherCondition     WeatherCondition `json:"weather_condition"`
	Location             Location         `json:"location"`
	CreatedAt            time.Time        `json:"created_at"`
}

// AverageWeatherResponse is the result of the trailing seven-day average.
type AverageWeatherResponse struct {
	City               string  `json:"city"`
	AverageTemperature float64 `json:"average_temperature"`
}

// WeatherCreateRequest is an ingested reading. Temperature must be Celsius.
type WeatherCreateRequest struct {
	Temperature   float64    `json:"temperature" validate:"required"`
	WindSpeed     float64    `json:"wind_speed" validate:"gte=0"`
	WindDirection string     `json:"wind_direction" validate:"required"`
	Humidity      float64    `json:"humidity" validate:"gte=0,lte=100"`
	Condition     string     `json:"weather_condition" validate:"required"`
	City          string     `json:"city" validate:"required"`
	SensorID      *uuid.UUID `json:"sensor_id,omitempty"`
}

// HistoryQueryParams holds paging parameters for full-history queries.
type HistoryQueryParams struct {
	Page  int
	Limit int
}

// Validate checks paging bounds.
func (p *HistoryQueryParams) Validate() error {
	if p.Page < 1 {
		return fmt.Errorf("page must be greater than 0")
	}
	if p.Limit < 1 || p.Limit > 1000 {
		return fmt.Errorf("limit must be between 1 and 1000")
	}
	return nil
}

// Offset converts page/limit into a row offset.
func (p *HistoryQueryParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
