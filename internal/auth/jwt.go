// Package auth contain handlers for account registration, login, and logout.
package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// JwtIssuer identifies access tokens minted by this service.
const JwtIssuer = "jobboard"

var secretKey = os.Getenv("SECRET_KEY")

// Token lifetimes for ephemeral and "remember me" sessions.
const (
	sessionLifetime  = time.Hour
	rememberLifetime = 30 * 24 * time.Hour
)

// GenerateStandardToken creates a signed access token for the given user id.
// A remembered session gets a long-lived token, otherwise it expires in an hour.
func GenerateStandardToken(userID uint, remember bool) (string, error) {

	lifetime := sessionLifetime
	if remember {
		lifetime = rememberLifetime
	}

	generatedAccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    JwtIssuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signedToken, err := generatedAccessToken.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("Failed to sign token: %s", err)
	}

	return signedToken, nil
}

// ValidatedToken parses and verifies an encoded access token.
func ValidatedToken(encodedToken string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodedToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return []byte(secretKey), nil
	})
}
