package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
)

// FindLocationByCity looks a location up by city name, case-insensitively.
func (dm *DatabaseManager) FindLocationByCity(ctx context.Context, city string) (models.Location, error) {
	query := `
        SELECT id, country, city
        FROM locations
        WHERE LOWER(city) = LOWER($1)
    `

	var loc models.Location
	err := dm.QueryRowWithHealthCheck(ctx, query, city).Scan(&loc.ID, &loc.Country, &loc.City)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Location{}, apperrors.ErrNotFound
		}
		return models.Location{}, fmt.Errorf("failed to query location: %w", err)
	}

	return loc, nil
}

// FindLocationByCityAndCountry looks a location up by the city/country pair.
func (dm *DatabaseManager) FindLocationByCityAndCountry(ctx context.Context, city, country string) (models.Location, error) {
	query := `
        SELECT id, country, city
        FROM locations
        WHERE LOWER(city) = LOWER($1) AND LOWER(country) = LOWER($2)
    `

	var loc models.Location
	err := dm.QueryRowWithHealthCheck(ctx, query, city, country).Scan(&loc.ID, &loc.Country, &loc.City)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Location{}, apperrors.ErrNotFound
		}
		return models.Location{}, fmt.Errorf("failed to query location: %w", err)
	}

	return loc, nil
}

// CreateLocation inserts a location if the city/country pair does not exist
// yet and returns the stored row either way.
func (dm *DatabaseManager) CreateLocation(ctx context.Context, country, city string) (models.Location, error) {
	query := `
        INSERT INTO locations (country, city)
        VALUES ($1, $2)
        ON CONFLICT (country, city) DO UPDATE SET country = EXCLUDED.country
        RETURNING id, country, city
    `

	var loc models.Location
	err := dm.QueryRowWithHealthCheck(ctx, query, country, city).Scan(&loc.ID, &loc.Country, &loc.City)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return loc, nil
}
