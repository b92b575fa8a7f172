package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

type contextKey string

const claimsKey contextKey = "claims"

// ErrNoUser is returned when the request carries no usable token.
var ErrNoUser = errors.New("no authenticated user")

// AuthMiddleware decodes the bearer token, if any, and stores its claims in
// the request context. Requests without a token pass through anonymously.
// A token that fails to decode is rejected.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := utils.ParseClaims(token, secret)
			if err != nil {
				utils.RespondError(w, nil, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the decoded token claims.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*utils.Claims)
	return claims, ok
}

// GetUserIDFromContext returns the id of the signed-in user.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return "", ErrNoUser
	}
	return claims.UserID, nil
}

// sessionUser converts claims into the user shape kept in session state.
func sessionUser(c *utils.Claims) models.SessionUser {
	return models.SessionUser{ID: c.UserID, Name: c.Name, Email: c.Email, Role: c.Role}
}

// hasRole reports whether the caller is known to hold one of roles. Anonymous
// callers pass; the backend is the authority and rejects them itself.
func hasRole(ctx context.Context, roles ...string) bool {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.Role == "" {
		return true
	}
	for _, role := range roles {
		if strings.EqualFold(claims.Role, role) {
			return true
		}
	}
	return false
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
