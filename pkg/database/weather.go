package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
)

const weatherSelectColumns = `
        w.id, w.temperature, w.wind_speed, w.wind_direction, w.humidity,
        w.weather_condition, w.sensor_id, w.created_at,
        l.id, l.country, l.city
`

func scanWeatherRow(scanner interface{ Scan(...any) error }) (models.WeatherData, error) {
	var w models.WeatherData
	err := scanner.Scan(
		&w.ID, &w.Temperature, &w.WindSpeed, &w.WindDirection, &w.Humidity,
		&w.Condition, &w.SensorID, &w.CreatedAt,
		&w.Location.ID, &w.Location.Country, &w.Location.City,
	)
	return w, err
}

// FindLatestWeatherByCity returns the most recent reading for a city.
// City matching is case-insensitive.
func (dm *DatabaseManager) FindLatestWeatherByCity(ctx context.Context, city string) (models.WeatherData, error) {
	query := `
        SELECT ` + weatherSelectColumns + `
        FROM weather_data w
        JOIN locations l ON w.location_id = l.id
        WHERE LOWER(l.city) = LOWER($1)
        ORDER BY w.created_at DESC
        LIMIT 1
    `

	w, err := scanWeatherRow(dm.QueryRowWithHealthCheck(ctx, query, city))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WeatherData{}, apperrors.ErrNotFound
		}
		return models.WeatherData{}, fmt.Errorf("failed to query latest weather: %w", err)
	}

	return w, nil
}

// FindWeatherByCityAndDateRange returns readings with created_at in the
// half-open interval [from, to), newest first.
func (dm *DatabaseManager) FindWeatherByCityAndDateRange(ctx context.Context, city string, from, to time.Time) ([]models.WeatherData, error) {
	query := `
        SELECT ` + weatherSelectColumns + `
        FROM weather_data w
        JOIN locations l ON w.location_id = l.id
        WHERE LOWER(l.city) = LOWER($1)
          AND w.created_at >= $2
          AND w.created_at < $3
        ORDER BY w.created_at DESC
    `

	rows, err := dm.QueryWithHealthCheck(ctx, query, city, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather range: %w", err)
	}
	defer rows.Close()

	return collectWeatherRows(rows)
}

// FindFullHistoryByCity returns a page of the full reading history for a
// city, newest first.
func (dm *DatabaseManager) FindFullHistoryByCity(ctx context.Context, city string, limit, offset int) ([]models.WeatherData, error) {
	query := `
        SELECT ` + weatherSelectColumns + `
        FROM weather_data w
        JOIN locations l ON w.location_id = l.id
        WHERE LOWER(l.city) = LOWER($1)
        ORDER BY w.created_at DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := dm.QueryWithHealthCheck(ctx, query, city, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather history: %w", err)
	}
	defer rows.Close()

	return collectWeatherRows(rows)
}

// FindLatestWeatherByCities returns the single most recent reading per city.
// Cities without readings are simply absent from the result.
func (dm *DatabaseManager) FindLatestWeatherByCities(ctx context.Context, cities []string) ([]models.WeatherData, error) {
	if len(cities) == 0 {
		return []models.WeatherData{}, nil
	}

	query := `
        SELECT DISTINCT ON (w.location_id) ` + weatherSelectColumns + `
        FROM weather_data w
        JOIN locations l ON w.location_id = l.id
        WHERE LOWER(l.city) IN (SELECT LOWER(c) FROM unnest($1::text[]) AS c)
        ORDER BY w.location_id, w.created_at DESC
    `

	rows, err := dm.QueryWithHealthCheck(ctx, query, pq.Array(cities))
	if err != nil {
		return nil, fmt.Errorf("failed to query latest weather per city: %w", err)
	}
	defer rows.Close()

	return collectWeatherRows(rows)
}

// StoreWeather persists one reading against an existing location and
// returns it with the generated id and timestamp.
func (dm *DatabaseManager) StoreWeather(ctx context.Context, data models.WeatherData) (models.WeatherData, error) {
	query := `
        INSERT INTO weather_data (temperature, wind_speed, wind_direction, humidity, weather_condition, location_id, sensor_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `

	err := dm.QueryRowWithHealthCheck(ctx, query,
		data.Temperature, data.WindSpeed, data.WindDirection, data.Humidity,
		data.Condition, data.Location.ID, data.SensorID,
	).Scan(&data.ID, &data.CreatedAt)
	if err != nil {
		return models.WeatherData{}, fmt.Errorf("failed to store weather reading: %w", err)
	}

	return data, nil
}

func collectWeatherRows(rows *sql.Rows) ([]models.WeatherData, error) {
	readings := []models.WeatherData{}
	for rows.Next() {
		w, err := scanWeatherRow(rows)
		if err != nil {
			log.Printf("Failed to scan weather reading: %v", err)
			continue
		}
		readings = append(readings, w)
	}

	return readings, rows.Err()
}
