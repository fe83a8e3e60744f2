package models

import (
	"time"

	"github.com/google/uuid"
)

// Sensor is a physical measurement device assigned to a location.
type Sensor struct {
	ID        uuid.UUID `json:"id"`
	Model     string    `json:"model"`
	Location  Location  `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// SensorModel is the device part of a sensor registration payload.
type SensorModel struct {
	Model string `json:"model" validate:"required"`
}

// SensorCreateRequest registers a new sensor at an existing location.
type SensorCreateRequest struct {
	Sensor   SensorModel     `json:"sensor" validate:"required"`
	Location LocationRequest `json:"location" validate:"required"`
}

// SensorFilter narrows the sensor listing by location.
type SensorFilter struct {
	Country string
	City    string
}
