package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
)

// CreateSensor registers a sensor at an existing location.
func (dm *DatabaseManager) CreateSensor(ctx context.Context, sensor models.Sensor) (models.Sensor, error) {
	if sensor.ID == uuid.Nil {
		sensor.ID = uuid.New()
	}

	query := `
        INSERT INTO sensors (id, model, location_id, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `

	err := dm.QueryRowWithHealthCheck(ctx, query,
		sensor.ID, sensor.Model, sensor.Location.ID, sensor.CreatedBy,
	).Scan(&sensor.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Sensor{}, apperrors.ErrNotFound
		}
		return models.Sensor{}, fmt.Errorf("failed to create sensor: %w", err)
	}

	return sensor, nil
}

// GetSensor returns a single sensor with its location joined.
func (dm *DatabaseManager) GetSensor(ctx context.Context, id uuid.UUID) (models.Sensor, error) {
	query := `
        SELECT s.id, s.model, s.created_at, s.created_by, l.id, l.country, l.city
        FROM sensors s
        JOIN locations l ON s.location_id = l.id
        WHERE s.id = $1
    `

	var sensor models.Sensor
	err := dm.QueryRowWithHealthCheck(ctx, query, id).Scan(
		&sensor.ID, &sensor.Model, &sensor.CreatedAt, &sensor.CreatedBy,
		&sensor.Location.ID, &sensor.Location.Country, &sensor.Location.City,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Sensor{}, apperrors.ErrNotFound
		}
		return models.Sensor{}, fmt.Errorf("failed to query sensor: %w", err)
	}

	return sensor, nil
}

// ListSensors returns sensors matching the filter. Empty filter fields
// are ignored.
func (dm *DatabaseManager) ListSensors(ctx context.Context, filter models.SensorFilter) ([]models.Sensor, error) {
	query := `
        SELECT s.id, s.model, s.created_at, s.created_by, l.id, l.country, l.city
        FROM sensors s
        JOIN locations l ON s.location_id = l.id
        WHERE 1=1
    `
	args := []any{}
	argCount := 1

	if filter.Country != "" {
		query += fmt.Sprintf(" AND LOWER(l.country) = LOWER($%d)", argCount)
		args = append(args, filter.Country)
		argCount++
	}

	if filter.City != "" {
		query += fmt.Sprintf(" AND LOWER(l.city) = LOWER($%d)", argCount)
		args = append(args, filter.City)
		argCount++
	}

	query += " ORDER BY s.created_at DESC"

	rows, err := dm.QueryWithHealthCheck(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sensors: %w", err)
	}
	defer rows.Close()

	sensors := []models.Sensor{}
	for rows.Next() {
		var sensor models.Sensor
		err := rows.Scan(
			&sensor.ID, &sensor.Model, &sensor.CreatedAt, &sensor.CreatedBy,
			&sensor.Location.ID, &sensor.Location.Country, &sensor.Location.City,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sensor: %w", err)
		}
		sensors = append(sensors, sensor)
	}

	return sensors, rows.Err()
}

// DeleteSensor removes a sensor. Readings keep their sensor_id reference,
// so sensors with stored readings cannot be removed.
func (dm *DatabaseManager) DeleteSensor(ctx context.Context, id uuid.UUID) error {
	result, err := dm.ExecWithHealthCheck(ctx, "DELETE FROM sensors WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrDataIntegrity
		}
		return fmt.Errorf("failed to delete sensor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
