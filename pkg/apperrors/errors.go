// Package apperrors holds the sentinel errors shared by the service and
// HTTP layers. Services wrap these with context via fmt.Errorf and %w;
// the boundary matches them with errors.Is to pick a status code.
package apperrors

import "errors"

var (
	// ErrNotFound covers missing cities, users, sensors and locations.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique field (email) is taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrBadCredentials is returned for an unknown account or wrong password.
	// The two cases are deliberately indistinguishable to callers.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrAccessDenied is returned when the policy check fails.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidToken covers tampered, expired and revoked tokens.
	ErrInvalidToken = errors.New("invalid or revoked token")

	// ErrValidation covers malformed input fields and invalid date ranges.
	ErrValidation = errors.New("validation failed")

	// ErrDataIntegrity is a storage-layer constraint violation that is not
	// a duplicate email, e.g. a broken foreign key on insert.
	ErrDataIntegrity = errors.New("data integrity violation")
)
