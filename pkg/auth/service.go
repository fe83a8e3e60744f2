package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
)

// UserStore is the slice of the persistence layer the authentication flow
// needs: account creation and lookup by email.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// Service validates credentials, issues tokens and registers accounts.
type Service struct {
	users     UserStore
	tokens    *TokenService
	blacklist *Blacklist
}

// NewService creates an authentication Service.
func NewService(users UserStore, tokens *TokenService, blacklist *Blacklist) *Service {
	return &Service{users: users, tokens: tokens, blacklist: blacklist}
}

// HashPassword runs the password through bcrypt with the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a USER account. The email is checked before the insert is
// attempted so a duplicate always surfaces as apperrors.ErrAlreadyExists and
// never creates a second account.
func (s *Service) Register(ctx context.Context, req models.RegistrationRequest) (models.UserResponse, error) {
	_, err := s.users.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return models.UserResponse{}, fmt.Errorf("email %q: %w", req.Email, apperrors.ErrAlreadyExists)
	case !errors.Is(err, apperrors.ErrNotFound):
		return models.UserResponse{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return models.UserResponse{}, err
	}

	// Self-registration never grants ADMIN, whatever the payload says.
	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Role:         models.RoleUser,
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return models.UserResponse{}, err
	}
	return created.PublicView(), nil
}

// Authenticate checks the credentials and issues a token carrying the
// account's full name. An unknown email and a wrong password both return
// apperrors.ErrBadCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrBadCredentials
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrBadCredentials
	}

	log.Printf("User %s logged in (role: %s)", user.Email, user.Role)

	return s.tokens.Generate(&user)
}

// Logout revokes the presented bearer token. The token stays rejected until
// its natural expiry even though it still validates structurally.
func (s *Service) Logout(token string) {
	s.blacklist.Add(token)
}

// Verify runs the two token checks in order: signature/expiry (stateless),
// then revocation membership (stateful). Both failures look the same to the
// caller.
func (s *Service) Verify(token string) (*Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	if s.blacklist.Contains(token) {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
