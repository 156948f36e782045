package handler

import (
	"context"
	"net/http"
	"strings"
	"zapzap/backend/internal/pkg/auth"
	"zapzap/backend/internal/pkg/httputils"
)

type contextKey int

const claimsKey contextKey = iota

// AuthMiddleware rejects requests without a valid bearer token and makes
// the claims available to the handlers downstream.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Preflight requests carry no Authorization header.
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputils.ResponseError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httputils.ResponseError(w, http.StatusUnauthorized, "invalid authorization format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			httputils.ResponseError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentClaims returns the claims stored by AuthMiddleware. Only valid
// on routes behind it.
func CurrentClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
	return claims
}
