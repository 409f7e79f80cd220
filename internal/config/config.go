package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/noah-isme/course-agenda-api/internal/agenda"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName         string `validate:"required"`
	AppEnv          string `validate:"required"`
	AppPort         string `validate:"required"`
	DatabaseURL     string `validate:"required"`
	RedisURL        string
	NATSURL         string
	JWTSecret       string        `validate:"required"`
	AlertsSubject   string        `validate:"required"`
	AlertsDedupeTTL time.Duration `validate:"gt=0"`
	RateLimitMax    int           `validate:"gte=0"`
	RateLimitWindow time.Duration `validate:"gt=0"`
	Agenda          AgendaConfig
}

// AgendaConfig is the report configuration an LMS administrator would set.
type AgendaConfig struct {
	GradeToPass     float64 `validate:"gte=0"`
	DaysToGrade     int     `validate:"gte=0"`
	DaysToWarn      int     `validate:"gte=0"`
	ExcludeModules  []string
	IncludeSection0 bool
	DurationFormat  string `validate:"oneof=days weeks"`
	DecimalPoints   int    `validate:"gte=0,lte=5"`
	ProgressColors  string
	StatesOptions   string
	RetardedDisplay string `validate:"oneof=split merged"`
	Timezone        string `validate:"required"`
	DefaultLang     string `validate:"oneof=en es"`
	ContactRoles    []string
	CreditsField    string
	HoursByCredit   float64 `validate:"gte=0"`
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Settings converts the agenda configuration into engine settings.
func (a AgendaConfig) Settings() agenda.Settings {
	excluded := make([]agenda.ActivityType, 0, len(a.ExcludeModules))
	for _, name := range a.ExcludeModules {
		excluded = append(excluded, agenda.ActivityType(name))
	}

	return agenda.Settings{
		DefaultGradeToPass: a.GradeToPass,
		DaysToGrade:        a.DaysToGrade,
		DaysToWarn:         a.DaysToWarn,
		ExcludedTypes:      excluded,
		IncludeSection0:    a.IncludeSection0,
		DurationFormat:     agenda.DurationFormat(a.DurationFormat),
		DecimalPoints:      a.DecimalPoints,
		ProgressColors:     agenda.ParseProgressColors(a.ProgressColors),
		StateOptions:       agenda.ParseStateOptions(a.StatesOptions),
		RetardedDisplay:    agenda.RetardedDisplay(a.RetardedDisplay),
		HoursByCredit:      a.HoursByCredit,
	}
}

// Location resolves the configured timezone.
func (a AgendaConfig) Location() (*time.Location, error) {
	location, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid agenda timezone %q: %w", a.Timezone, err)
	}
	return location, nil
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("AGENDA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Course Agenda API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("alerts.subject", "agenda.alerts")
	v.SetDefault("alerts.dedupe_ttl", "24h")
	v.SetDefault("rate_limit.max", 60)
	v.SetDefault("rate_limit.window", "1m")

	defaults := agenda.DefaultSettings()
	v.SetDefault("agenda.grade_to_pass", 0)
	v.SetDefault("agenda.days_to_grade", 0)
	v.SetDefault("agenda.days_to_warn", 0)
	v.SetDefault("agenda.exclude_modules", "")
	v.SetDefault("agenda.include_section0", false)
	v.SetDefault("agenda.duration_format", string(defaults.DurationFormat))
	v.SetDefault("agenda.decimal_points", defaults.DecimalPoints)
	v.SetDefault("agenda.progress_colors", "")
	v.SetDefault("agenda.states_options", "")
	v.SetDefault("agenda.retarded_display", string(defaults.RetardedDisplay))
	v.SetDefault("agenda.timezone", "UTC")
	v.SetDefault("agenda.default_lang", "en")
	v.SetDefault("agenda.contact_roles", "editingteacher")
	v.SetDefault("agenda.credits_field", "")
	v.SetDefault("agenda.hours_by_credit", 0)
}

func fromViper(v *viper.Viper) (Config, error) {
	dedupeTTL, err := parseDuration(v, "alerts.dedupe_ttl")
	if err != nil {
		return Config{}, err
	}

	window, err := parseDuration(v, "rate_limit.window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		DatabaseURL:     v.GetString("database.url"),
		RedisURL:        v.GetString("redis.url"),
		NATSURL:         v.GetString("nats.url"),
		JWTSecret:       v.GetString("jwt.secret"),
		AlertsSubject:   v.GetString("alerts.subject"),
		AlertsDedupeTTL: dedupeTTL,
		RateLimitMax:    v.GetInt("rate_limit.max"),
		RateLimitWindow: window,
		Agenda: AgendaConfig{
			GradeToPass:     v.GetFloat64("agenda.grade_to_pass"),
			DaysToGrade:     v.GetInt("agenda.days_to_grade"),
			DaysToWarn:      v.GetInt("agenda.days_to_warn"),
			ExcludeModules:  splitModules(v.GetString("agenda.exclude_modules")),
			IncludeSection0: v.GetBool("agenda.include_section0"),
			DurationFormat:  strings.ToLower(v.GetString("agenda.duration_format")),
			DecimalPoints:   v.GetInt("agenda.decimal_points"),
			ProgressColors:  v.GetString("agenda.progress_colors"),
			StatesOptions:   v.GetString("agenda.states_options"),
			RetardedDisplay: strings.ToLower(v.GetString("agenda.retarded_display")),
			Timezone:        v.GetString("agenda.timezone"),
			DefaultLang:     strings.ToLower(v.GetString("agenda.default_lang")),
			ContactRoles:    splitModules(v.GetString("agenda.contact_roles")),
			CreditsField:    strings.TrimSpace(v.GetString("agenda.credits_field")),
			HoursByCredit:   v.GetFloat64("agenda.hours_by_credit"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := cfg.Agenda.Location(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	duration, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return duration, nil
}

func splitModules(raw string) []string {
	parts := strings.Split(raw, ",")
	modules := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			modules = append(modules, trimmed)
		}
	}
	return modules
}
