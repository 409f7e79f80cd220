package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/course-agenda-api/internal/utils"
)

// Keys under which the authenticated identity is stored in fiber locals.
const (
	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
	LocalUserLang = "user_lang"
)

// JWTProtected returns a middleware that validates HMAC signed bearer tokens
// issued by the LMS and exposes the subject, role and language claims.
func JWTProtected(secret string) fiber.Handler {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}

	return func(c *fiber.Ctx) error {
		authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authorization == "" {
			return utils.Fail(c, fiber.StatusUnauthorized, "authorization header missing", nil)
		}

		scheme, tokenString, found := strings.Cut(authorization, " ")
		if !found || !strings.EqualFold(scheme, "bearer") {
			return utils.Fail(c, fiber.StatusUnauthorized, "invalid authorization header", nil)
		}

		tokenString = strings.TrimSpace(tokenString)
		if tokenString == "" {
			return utils.Fail(c, fiber.StatusUnauthorized, "invalid token", nil)
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
		if err != nil || !token.Valid {
			return utils.Fail(c, fiber.StatusUnauthorized, "invalid token", nil)
		}

		userID, ok := userIDFromClaims(claims)
		if !ok {
			return utils.Fail(c, fiber.StatusUnauthorized, "invalid token subject", nil)
		}

		c.Locals(LocalUserID, userID)
		if role := roleFromClaims(claims); role != "" {
			c.Locals(LocalUserRole, role)
		}
		if lang, ok := claims["lang"].(string); ok && strings.TrimSpace(lang) != "" {
			c.Locals(LocalUserLang, strings.ToLower(strings.TrimSpace(lang)))
		}

		return c.Next()
	}
}

func userIDFromClaims(claims jwt.MapClaims) (uint, bool) {
	for _, key := range []string{"sub", "user_id", "userid"} {
		value, ok := claims[key]
		if !ok {
			continue
		}
		if id, err := normalizeUserID(value); err == nil && id > 0 {
			return id, true
		}
	}
	return 0, false
}

func normalizeUserID(value interface{}) (uint, error) {
	switch v := value.(type) {
	case float64:
		if v < 0 || v != float64(uint(v)) {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("unsupported subject type %T", value)
	}
}

// roleFromClaims picks the most privileged role when the token lists several.
func roleFromClaims(claims jwt.MapClaims) string {
	var candidates []string
	for _, key := range []string{"role", "roles"} {
		switch v := claims[key].(type) {
		case string:
			candidates = append(candidates, v)
		case []interface{}:
			for _, item := range v {
				if role, ok := item.(string); ok {
					candidates = append(candidates, role)
				}
			}
		}
	}

	best := ""
	for _, candidate := range candidates {
		role := normalizeRoleValue(candidate)
		if role == "" {
			continue
		}
		if best == "" || rolePriority(role) > rolePriority(best) {
			best = role
		}
	}
	return best
}
