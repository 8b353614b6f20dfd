package main

import (
	"time"

	"paytracker/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "PayTracker API"

// tokenOffset anchors expiry computation at the fixed -03:00 offset
// regardless of the server timezone.
var tokenOffset = time.FixedZone("-03:00", -3*60*60)

// generateToken signs an HS256 token carrying the user's email as subject,
// expiring two hours from now.
func generateToken(secret []byte, user *models.User) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   user.Email,
		ExpiresAt: jwt.NewNumericDate(tokenExpiration(time.Now())),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// tokenExpiration takes the local wall-clock reading of now, re-anchors it
// at the fixed -03:00 offset and adds the two hour lifetime.
func tokenExpiration(now time.Time) time.Time {
	wall := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), tokenOffset)
	return wall.Add(2 * time.Hour)
}

// validateToken checks signature, issuer and expiry and returns the subject
// email. Every failure collapses into the same invalid-token error.
func validateToken(secret []byte, tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", newError(errInvalidToken, "Invalid or expired token!")
	}
	return claims.Subject, nil
}
