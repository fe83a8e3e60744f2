package models

// Location is a geographic place readings, sensors and users refer to.
type Location struct {
	ID      int    `json:"id"`
	Country string `json:"country"`
	City    string `json:"city"`
}

// LocationRequest identifies a location by city and country, e.g. when
// registering a sensor or attaching a location to a user.
type LocationRequest struct {
	Country string `json:"country" validate:"required"`
	City    string `json:"city" validate:"required"`
}
