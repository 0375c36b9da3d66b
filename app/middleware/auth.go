package appMiddleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const ItineraryIDKey contextKey = "itineraryID"

// DownloadAudience is the audience carried by every export download token.
const DownloadAudience = "roadtrip-export"

// DownloadClaims grants a single itinerary's PDF to the bearer.
type DownloadClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// IssueDownloadToken signs an HS256 token scoped to itineraryID.
func IssueDownloadToken(secret []byte, itineraryID string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := DownloadClaims{
		Purpose: "pdf_export",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   itineraryID,
			Audience:  jwt.ClaimStrings{DownloadAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
