package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "agenda-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func jwtApp(captured *fiber.Map) *fiber.App {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/", func(c *fiber.Ctx) error {
		*captured = fiber.Map{
			"user": c.Locals(LocalUserID),
			"role": c.Locals(LocalUserRole),
			"lang": c.Locals(LocalUserLang),
		}
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestJWTProtectedExposesClaims(t *testing.T) {
	var captured fiber.Map
	app := jwtApp(&captured)

	token := signToken(t, jwt.MapClaims{
		"sub":   "42",
		"roles": []interface{}{"student", "EditingTeacher"},
		"lang":  "ES",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, uint(42), captured["user"])
	require.Equal(t, RoleEditingTeacher, captured["role"])
	require.Equal(t, "es", captured["lang"])
}

func TestJWTProtectedRejectsInvalidTokens(t *testing.T) {
	expired := signToken(t, jwt.MapClaims{"sub": float64(7), "exp": time.Now().Add(-time.Hour).Unix()}, testSecret)
	foreign := signToken(t, jwt.MapClaims{"sub": float64(7)}, "other-secret")
	noSubject := signToken(t, jwt.MapClaims{"role": "student"}, testSecret)

	cases := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Basic abc",
		"empty bearer":    "Bearer ",
		"expired":         "Bearer " + expired,
		"foreign secret":  "Bearer " + foreign,
		"missing subject": "Bearer " + noSubject,
		"malformed token": "Bearer not.a.token",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			var captured fiber.Map
			app := jwtApp(&captured)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set(fiber.HeaderAuthorization, header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			require.Nil(t, captured)
		})
	}
}

func TestNormalizeUserID(t *testing.T) {
	id, err := normalizeUserID(float64(12))
	require.NoError(t, err)
	require.Equal(t, uint(12), id)

	_, err = normalizeUserID(float64(1.5))
	require.Error(t, err)

	_, err = normalizeUserID(true)
	require.Error(t, err)
}
