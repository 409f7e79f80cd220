package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-agenda-api/internal/agenda"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AGENDA_DATABASE_URL", "file:agenda?mode=memory")
	t.Setenv("AGENDA_JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, 24*time.Hour, cfg.AlertsDedupeTTL)
	require.Equal(t, "agenda.alerts", cfg.AlertsSubject)
	require.Equal(t, "weeks", cfg.Agenda.DurationFormat)
	require.Equal(t, "split", cfg.Agenda.RetardedDisplay)
	require.Empty(t, cfg.Agenda.ExcludeModules)
	require.Equal(t, []string{"editingteacher"}, cfg.Agenda.ContactRoles)
	require.Empty(t, cfg.Agenda.CreditsField)

	settings := cfg.Agenda.Settings()
	require.Equal(t, agenda.DefaultProgressColors(), settings.ProgressColors)
	require.Equal(t, agenda.DefaultStateOptions(), settings.StateOptions)
	require.Equal(t, 2, settings.DecimalPoints)
}

func TestLoadAgendaOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AGENDA_APP_PORT", ":9090")
	t.Setenv("AGENDA_AGENDA_GRADE_TO_PASS", "60")
	t.Setenv("AGENDA_AGENDA_DAYS_TO_WARN", "3")
	t.Setenv("AGENDA_AGENDA_EXCLUDE_MODULES", "scorm, Survey,,")
	t.Setenv("AGENDA_AGENDA_INCLUDE_SECTION0", "true")
	t.Setenv("AGENDA_AGENDA_DURATION_FORMAT", "DAYS")
	t.Setenv("AGENDA_AGENDA_RETARDED_DISPLAY", "merged")
	t.Setenv("AGENDA_AGENDA_PROGRESS_COLORS", "#ff0000|33\n#00ff00")
	t.Setenv("AGENDA_AGENDA_DEFAULT_LANG", "es")
	t.Setenv("AGENDA_AGENDA_CONTACT_ROLES", "EditingTeacher, teacher")
	t.Setenv("AGENDA_AGENDA_CREDITS_FIELD", " credits ")
	t.Setenv("AGENDA_AGENDA_HOURS_BY_CREDIT", "25")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())

	settings := cfg.Agenda.Settings()
	require.Equal(t, float64(60), settings.DefaultGradeToPass)
	require.Equal(t, 3, settings.DaysToWarn)
	require.Equal(t, []agenda.ActivityType{agenda.TypeScorm, agenda.TypeSurvey}, settings.ExcludedTypes)
	require.True(t, settings.IncludeSection0)
	require.Equal(t, agenda.DurationDays, settings.DurationFormat)
	require.Equal(t, agenda.RetardedMerged, settings.RetardedDisplay)
	require.Equal(t, []agenda.ProgressThreshold{{Limit: 33, Color: "#ff0000"}, {Limit: 100, Color: "#00ff00"}}, settings.ProgressColors)
	require.Equal(t, "es", cfg.Agenda.DefaultLang)
	require.Equal(t, []string{"editingteacher", "teacher"}, cfg.Agenda.ContactRoles)
	require.Equal(t, "credits", cfg.Agenda.CreditsField)
	require.Equal(t, float64(25), settings.HoursByCredit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"missing jwt secret":  {"AGENDA_JWT_SECRET": ""},
		"bad duration format": {"AGENDA_AGENDA_DURATION_FORMAT": "months"},
		"bad retarded mode":   {"AGENDA_AGENDA_RETARDED_DISPLAY": "both"},
		"bad dedupe ttl":      {"AGENDA_ALERTS_DEDUPE_TTL": "soon"},
		"bad timezone":        {"AGENDA_AGENDA_TIMEZONE": "Mars/Olympus"},
		"unsupported lang":    {"AGENDA_AGENDA_DEFAULT_LANG": "fr"},
		"negative hours":      {"AGENDA_AGENDA_HOURS_BY_CREDIT": "-1"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			for key, value := range env {
				t.Setenv(key, value)
			}

			_, err := Load()
			require.Error(t, err)
		})
	}
}
