package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
}

// Helper: validate access token in response and return claims.
func assertValidAccessToken(t *testing.T, resp map[string]interface{}) *jwt.RegisteredClaims {
	t.Helper()
	tokenStr, ok := resp["access_token"].(string)
	assert.True(t, ok, "access_token not a string")
	token, err := ValidatedToken(tokenStr)
	assert.NoError(t, err)
	assert.True(t, token.Valid)
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	assert.True(t, ok, "claims type mismatch")
	assert.NotEmpty(t, claims.Subject, "token subject empty")
	assert.Equal(t, JwtIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID, "token has no jti")
	return claims
}

func TestRegister(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"username": "fresh_user",
		"email":    "fresh_user@example.com",
		"password": "freshPass123",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	assert.Contains(t, resp, "access_token")
	claims := assertValidAccessToken(t, resp)

	userVal, ok := resp["user"]
	assert.True(t, ok, "user key missing in response")
	userObj, ok := userVal.(map[string]interface{})
	assert.True(t, ok, "user object has wrong type")

	assert.Equal(t, "fresh_user", userObj["username"])
	assert.Equal(t, "member", userObj["role"], "new accounts start as member")
	assert.NotContains(t, userObj, "password", "password hash must never be serialized")

	if idVal, ok := userObj["id"].(float64); ok {
		assert.Equal(t, fmt.Sprintf("%.0f", idVal), claims.Subject, "JWT subject should match user id")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"username": "someone_else",
		"email":    database.TestMember1.Email, // seeded email
		"password": "password123",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "Email already registered")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"username": database.TestMember1.Username, // seeded username
		"email":    "unused_email@example.com",
		"password": "password123",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "Username already taken")
}

func TestRegisterInvalidPayload(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	cases := []map[string]string{
		{"username": "ab", "email": "ab@example.com", "password": "password123"}, // username too short
		{"username": "valid_name", "email": "not-an-email", "password": "password123"},
		{"username": "valid_name", "email": "valid@example.com", "password": "12345"}, // password too short
		{"username": "valid_name", "email": "valid@example.com"},                      // password missing
	}

	for _, payload := range cases {
		rec, _, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload %v should be rejected", payload)
	}
}

func TestLogin(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]interface{}{
		"email":    database.TestMember1.Email,
		"password": database.TestSeedPassword,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "unexpected status, body: %s", rec.Body.String())

	claims := assertValidAccessToken(t, resp)
	assert.Equal(t, fmt.Sprintf("%d", database.TestMember1.ID), claims.Subject)

	// Session tokens expire in about one hour
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginRemember(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]interface{}{
		"email":    database.TestMember1.Email,
		"password": database.TestSeedPassword,
		"remember": true,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	claims := assertValidAccessToken(t, resp)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginWrongPassword(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":    database.TestMember1.Email,
		"password": "definitely-wrong",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "Email or password is incorrect")
}

func TestLoginUnknownEmail(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":    "ghost@example.com",
		"password": "password123",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Same message as wrong password, do not leak which field failed
	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "Email or password is incorrect")
}
