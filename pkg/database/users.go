package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
)

const userSelectColumns = `id, email, password_hash, firstname, lastname, role, created_at`

func scanUserRow(scanner interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := scanner.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Firstname, &u.Lastname, &u.Role, &u.CreatedAt)
	return u, err
}

// CreateUser inserts a new account. The password must already be hashed.
func (dm *DatabaseManager) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        INSERT INTO users (email, password_hash, firstname, lastname, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `

	err := dm.QueryRowWithHealthCheck(ctx, query,
		user.Email, user.PasswordHash, user.Firstname, user.Lastname, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, apperrors.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// FindUserByEmail looks an account up by email, case-insensitively.
func (dm *DatabaseManager) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `
        SELECT ` + userSelectColumns + `
        FROM users
        WHERE LOWER(email) = LOWER($1)
    `

	user, err := scanUserRow(dm.QueryRowWithHealthCheck(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperrors.ErrNotFound
		}
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// FindUserByID looks an account up by primary key.
func (dm *DatabaseManager) FindUserByID(ctx context.Context, id int) (models.User, error) {
	query := `
        SELECT ` + userSelectColumns + `
        FROM users
        WHERE id = $1
    `

	user, err := scanUserRow(dm.QueryRowWithHealthCheck(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperrors.ErrNotFound
		}
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// ListUsers returns a page of accounts matching the filter, newest first.
// Email and lastname match as case-insensitive substrings; empty filter
// fields are ignored.
func (dm *DatabaseManager) ListUsers(ctx context.Context, filter models.UserSearchFilter, limit, offset int) ([]models.User, error) {
	query := `
        SELECT ` + userSelectColumns + `
        FROM users
        WHERE 1=1
    `
	args := []any{}
	argCount := 1

	if filter.Email != "" {
		query += fmt.Sprintf(" AND email ILIKE $%d", argCount)
		args = append(args, "%"+filter.Email+"%")
		argCount++
	}

	if filter.Lastname != "" {
		query += fmt.Sprintf(" AND lastname ILIKE $%d", argCount)
		args = append(args, "%"+filter.Lastname+"%")
		argCount++
	}

	if filter.CreatedAt != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, *filter.CreatedAt)
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	rows, err := dm.QueryWithHealthCheck(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// UpdateUser overwrites the mutable fields of an account. An empty
// PasswordHash keeps the stored one.
func (dm *DatabaseManager) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        UPDATE users
        SET email = $1,
            firstname = $2,
            lastname = $3,
            role = $4,
            password_hash = CASE WHEN $5 = '' THEN password_hash ELSE $5 END
        WHERE id = $6
        RETURNING ` + userSelectColumns + `
    `

	updated, err := scanUserRow(dm.QueryRowWithHealthCheck(ctx, query,
		user.Email, user.Firstname, user.Lastname, user.Role, user.PasswordHash, user.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperrors.ErrNotFound
		}
		if isUniqueViolation(err) {
			return models.User{}, apperrors.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return updated, nil
}

// DeleteUser removes an account and its location associations.
func (dm *DatabaseManager) DeleteUser(ctx context.Context, id int) error {
	result, err := dm.ExecWithHealthCheck(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
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

// AddUserLocation associates a location with an account. Adding the same
// association twice is not an error.
func (dm *DatabaseManager) AddUserLocation(ctx context.Context, userID, locationID int) error {
	query := `
        INSERT INTO user_locations (user_id, location_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `

	if _, err := dm.ExecWithHealthCheck(ctx, query, userID, locationID); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to add user location: %w", err)
	}

	return nil
}

// ListUserLocations returns the locations associated with an account.
func (dm *DatabaseManager) ListUserLocations(ctx context.Context, userID int) ([]models.Location, error) {
	query := `
        SELECT l.id, l.country, l.city
        FROM user_locations ul
        JOIN locations l ON ul.location_id = l.id
        WHERE ul.user_id = $1
        ORDER BY l.country, l.city
    `

	rows, err := dm.QueryWithHealthCheck(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user locations: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.ID, &loc.Country, &loc.City); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
