package appMiddleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/roadtrip-genie/internal/api"
)

var errMissingToken = errors.New("download token required")

// RequireDownloadToken guards export routes. The token is read from the
// Authorization header or the token query parameter and must be scoped to the
// itinerary_id URL parameter. When enabled is false requests pass through.
func RequireDownloadToken(secret []byte, enabled bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := tokenFromRequest(r)
			if err != nil {
				api.ErrorResponse(w, r, http.StatusUnauthorized, err.Error())
				return
			}

			claims := &DownloadClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.WarnContext(r.Context(), "Rejected download token", slog.Any("error", err))
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			if !api.VerifyAudience(claims.Audience, DownloadAudience) {
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid token audience")
				return
			}

			itineraryID := chi.URLParam(r, "itinerary_id")
			if claims.Subject != itineraryID {
				api.ErrorResponse(w, r, http.StatusForbidden, "Token does not grant access to this itinerary")
				return
			}

			ctx := context.WithValue(r.Context(), ItineraryIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			return "", errors.New("Authorization header format must be Bearer {token}")
		}
		return headerParts[1], nil
	}
	if t := r.URL.Query().Get("token"); t != "" {
		return t, nil
	}
	return "", errMissingToken
}

func GetItineraryIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ItineraryIDKey).(string)
	return id, ok
}
