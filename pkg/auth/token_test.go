package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
)

func testUser() *models.User {
	return &models.User{
		ID:        42,
		Email:     "jane.doe@example.com",
		Firstname: "Jane",
		Lastname:  "Doe",
		Role:      models.RoleUser,
	}
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	ts := NewTokenService("test-secret", time.Hour)

	token, err := ts.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if claims.Subject != "jane.doe@example.com" {
		t.Errorf("Subject = %q, want jane.doe@example.com", claims.Subject)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.FullName != "Jane Doe" {
		t.Errorf("FullName = %q, want %q", claims.FullName, "Jane Doe")
	}
	if claims.Role != "USER" {
		t.Errorf("Role = %q, want USER", claims.Role)
	}
}

func TestTokenService_RejectsExpired(t *testing.T) {
	ts := NewTokenService("test-secret", -time.Minute)

	token, err := ts.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := ts.Validate(token); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("Validate(expired) = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_RejectsTampered(t *testing.T) {
	ts := NewTokenService("test-secret", time.Hour)

	token, err := ts.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := ts.Validate(tampered); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("Validate(tampered) = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("Validate(wrong secret) = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	ts := NewTokenService("test-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "jane.doe@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build none-alg token: %v", err)
	}

	if _, err := ts.Validate(token); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("Validate(none alg) = %v, want ErrInvalidToken", err)
	}
}
