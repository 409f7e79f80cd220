package router_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-agenda-api/internal/config"
	"github.com/noah-isme/course-agenda-api/internal/handler"
	"github.com/noah-isme/course-agenda-api/internal/router"
)

func TestRegisterHealthAndMetrics(t *testing.T) {
	app := fiber.New()
	router.Register(app, config.Config{AppName: "Course Agenda API", AppEnv: "test"}, router.Dependencies{Languages: []string{"en", "es"}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Course Agenda API", resp.Header.Get("X-Application"))

	var payload struct {
		Data handler.HealthResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()
	require.Equal(t, "ok", payload.Data.Status)
	require.Equal(t, []string{"en", "es"}, payload.Data.Languages)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "go_goroutines")
}

func TestRegisterSkipsAgendaWithoutHandler(t *testing.T) {
	app := fiber.New()
	router.Register(app, config.Config{AppName: "x"}, router.Dependencies{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, router.CoursesPrefix+"/1/agenda", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
