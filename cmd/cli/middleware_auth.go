package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/EvgDevt/weather-app/pkg/apperrors"
	"github.com/EvgDevt/weather-app/pkg/models"
)

// JWTAuthMiddleware validates bearer tokens. A token passes only if its
// signature and expiry check out and it has not been revoked; the account
// is then re-loaded from the store so role changes take effect immediately.
func (rm *RouteManager) JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := extractBearerToken(r)
		if !ok {
			writeError(w, apperrors.ErrInvalidToken)
			return
		}

		claims, err := rm.authService.Verify(tokenString)
		if err != nil {
			writeError(w, apperrors.ErrInvalidToken)
			return
		}

		user, err := rm.principals.FindUserByEmail(r.Context(), claims.Subject)
		if err != nil {
			writeError(w, apperrors.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return "", false
	}
	return authHeader[len(prefix):], true
}

// GetUserFromContext retrieves the authenticated user from request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// authorize is the single access decision point. Admins pass everything;
// non-admins pass only when no admin role is required and the target
// account is their own (targetID 0 means no specific target).
func authorize(principal *models.User, targetID int, needAdmin bool) error {
	if principal == nil {
		return apperrors.ErrInvalidToken
	}
	if principal.Role == models.RoleAdmin {
		return nil
	}
	if needAdmin {
		return apperrors.ErrAccessDenied
	}
	if targetID != 0 && principal.ID != targetID {
		return apperrors.ErrAccessDenied
	}
	return nil
}

// requireAdmin guards a handler behind the ADMIN role.
func (rm *RouteManager) requireAdmin(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := authorize(GetUserFromContext(r.Context()), 0, true); err != nil {
			writeError(w, err)
			return
		}
		handler(w, r)
	}
}

// requireSelfOrAdmin guards a handler with an {id} path variable so only
// the account itself or an admin can reach it.
func (rm *RouteManager) requireSelfOrAdmin(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			writeError(w, apperrors.ErrValidation)
			return
		}
		if err := authorize(GetUserFromContext(r.Context()), targetID, false); err != nil {
			writeError(w, err)
			return
		}
		handler(w, r)
	}
}
