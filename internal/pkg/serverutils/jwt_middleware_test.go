package serverutils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", JwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"user_id": ctx.Locals("user_id")})
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	userId := uuid.NewString()
	valid := signToken(t, testSecret, jwt.MapClaims{
		"user_id": userId,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	expired := signToken(t, testSecret, jwt.MapClaims{
		"user_id": userId,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": userId,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	noSubject := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + valid, 200},
		{"no header", "", 401},
		{"not bearer", "Basic abc123", 401},
		{"expired token", "Bearer " + expired, 401},
		{"wrong signing key", "Bearer " + wrongKey, 401},
		{"missing user_id claim", "Bearer " + noSubject, 401},
		{"garbage token", "Bearer not.a.jwt", 401},
	}

	app := newProtectedApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			res, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.StatusCode)
		})
	}
}

func TestJwtMiddlewareExposesUserId(t *testing.T) {
	userId := uuid.NewString()
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": userId,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
}
