package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-agenda-api/internal/middleware"
)

// queryValidator validates parsed query structs and renders field errors in
// English keyed by the query parameter name.
type queryValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newQueryValidator() *queryValidator {
	validate := validator.New()

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &queryValidator{validate: validate, translator: translator}
}

// Struct validates payload and returns per-field messages on failure.
func (v *queryValidator) Struct(payload interface{}) (map[string]string, error) {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}

	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fieldErr.Translate(v.translator)
	}
	return details, err
}

func userIDFromContext(c *fiber.Ctx) uint {
	if id, ok := c.Locals(middleware.LocalUserID).(uint); ok {
		return id
	}
	return 0
}

func userRoleFromContext(c *fiber.Ctx) string {
	if role, ok := c.Locals(middleware.LocalUserRole).(string); ok {
		return role
	}
	return ""
}

// requestLang picks the language from the query, then the token, then the
// Accept-Language header.
func requestLang(c *fiber.Ctx, queryLang string, supported []string) string {
	if queryLang != "" {
		return queryLang
	}
	if lang, ok := c.Locals(middleware.LocalUserLang).(string); ok && lang != "" {
		return lang
	}
	if len(supported) == 0 {
		return ""
	}
	return c.AcceptsLanguages(supported...)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
