package models

import "fmt"

// WindDirection is stored as its compass abbreviation ("N", "SW", "CLM", ...).
type WindDirection string

const (
	WindNorth     WindDirection = "N"
	WindEast      WindDirection = "E"
	WindSouth     WindDirection = "S"
	WindWest      WindDirection = "W"
	WindNorthEast WindDirection = "NE"
	WindSouthEast WindDirection = "SE"
	WindSouthWest WindDirection = "SW"
	WindNorthWest WindDirection = "NW"
	WindCalm      WindDirection = "CLM"
)

var windDirections = map[WindDirection]struct{}{
	WindNorth:     {},
	WindEast:      {},
	WindSouth:     {},
	WindWest:      {},
	WindNorthEast: {},
	WindSouthEast: {},
	WindSouthWest: {},
	WindNorthWest: {},
	WindCalm:      {},
}

// IsValid reports whether d is a known compass abbreviation.
func (d WindDirection) IsValid() bool {
	_, ok := windDirections[d]
	return ok
}

// ParseWindDirection converts a stored abbreviation into a WindDirection.
func ParseWindDirection(s string) (WindDirection, error) {
	d := WindDirection(s)
	if !d.IsValid() {
		return "", fmt.Errorf("unknown wind direction abbreviation %q", s)
	}
	return d, nil
}
