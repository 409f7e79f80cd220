package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-agenda-api/internal/dto"
	"github.com/noah-isme/course-agenda-api/internal/handler"
	"github.com/noah-isme/course-agenda-api/internal/middleware"
	"github.com/noah-isme/course-agenda-api/internal/service"
)

type stubAgendaService struct {
	response dto.AgendaResponse
	progress dto.ProgressResponse
	err      error
	calls    int
	last     service.AgendaRequest
}

func (s *stubAgendaService) GetAgenda(_ context.Context, req service.AgendaRequest) (dto.AgendaResponse, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return dto.AgendaResponse{}, s.err
	}
	response := s.response
	response.Lang = req.Lang
	return response, nil
}

func (s *stubAgendaService) GetProgress(_ context.Context, req service.AgendaRequest) (dto.ProgressResponse, error) {
	s.calls++
	s.last = req
	return s.progress, s.err
}

func (s *stubAgendaService) Snapshot(_ context.Context, req service.AgendaRequest) (service.AgendaSnapshot, error) {
	s.last = req
	return service.AgendaSnapshot{}, s.err
}

type stubAlertService struct {
	err      error
	courseID uint
	userID   uint
}

func (s *stubAlertService) Dispatch(_ context.Context, courseID, userID uint) (dto.AlertDispatchResponse, error) {
	s.courseID = courseID
	s.userID = userID
	if s.err != nil {
		return dto.AlertDispatchResponse{}, s.err
	}
	return dto.AlertDispatchResponse{
		CourseID:  courseID,
		UserID:    userID,
		Published: []dto.AgendaAlert{{ID: "a1", Kind: service.AlertKindDueSoon, ActivityID: 4}},
	}, nil
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    map[string]string `json:"meta"`
	Details map[string]string `json:"details"`
}

func newAgendaApp(agendas service.AgendaService, alerts service.AlertService, userID uint, role, lang string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v2/courses", func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals(middleware.LocalUserID, userID)
		}
		if role != "" {
			c.Locals(middleware.LocalUserRole, role)
		}
		if lang != "" {
			c.Locals(middleware.LocalUserLang, lang)
		}
		return c.Next()
	})
	handler.NewAgendaHandler(agendas, alerts, []string{"en", "es"}, zerolog.Nop()).Register(group)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string, headers map[string]string) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func TestAgendaHandlerGetAgenda(t *testing.T) {
	progress := 50.0
	svc := &stubAgendaService{response: dto.AgendaResponse{CourseID: 3, Progress: &progress}}
	app := newAgendaApp(svc, nil, 10, "student", "")

	resp, payload := doRequest(t, app, http.MethodGet, "/api/v2/courses/3/agenda?lang=es", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
	require.Equal(t, "agenda retrieved", payload.Message)
	require.Equal(t, "es", payload.Meta["lang"])

	var data dto.AgendaResponse
	require.NoError(t, json.Unmarshal(payload.Data, &data))
	require.Equal(t, uint(3), data.CourseID)
	require.Equal(t, 50.0, *data.Progress)

	require.Equal(t, service.AgendaRequest{CourseID: 3, ViewerID: 10, Lang: "es"}, svc.last)
}

func TestAgendaHandlerLanguageFallbacks(t *testing.T) {
	svc := &stubAgendaService{}

	app := newAgendaApp(svc, nil, 10, "student", "es")
	resp, _ := doRequest(t, app, http.MethodGet, "/api/v2/courses/3/agenda", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "es", svc.last.Lang)

	app = newAgendaApp(svc, nil, 10, "student", "")
	resp, _ = doRequest(t, app, http.MethodGet, "/api/v2/courses/3/agenda", map[string]string{"Accept-Language": "es-CO,es;q=0.9"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "es", svc.last.Lang)
}

func TestAgendaHandlerStaffViewer(t *testing.T) {
	svc := &stubAgendaService{}
	app := newAgendaApp(svc, nil, 2, "EditingTeacher", "")

	resp, _ := doRequest(t, app, http.MethodGet, "/api/v2/courses/3/agenda?user_id=10", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.last.ViewerStaff)
	require.Equal(t, uint(10), svc.last.UserID)
	require.Equal(t, uint(10), svc.last.Target())
}

func TestAgendaHandlerValidation(t *testing.T) {
	svc := &stubAgendaService{}
	app := newAgendaApp(svc, nil, 10, "student", "")

	resp, payload := doRequest(t, app, http.MethodGet, "/api/v2/courses/3/agenda?lang=fr", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "validation failed", payload.Message)
	require.Contains(t, payload.Details, "lang")

	resp, payload = doRequest(t, app, http.MethodGet, "/api/v2/courses/abc/agenda", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid course id", payload.Message)

	require.Zero(t, svc.calls)
}

func TestAgendaHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "course not found", err: service.ErrCourseNotFound, status: fiber.StatusNotFound},
		{name: "not enrolled", err: service.ErrUserNotEnrolled, status: fiber.StatusNotFound},
		{name: "forbidden", err: service.ErrForbiddenViewer, status: fiber.StatusForbidden},
		{name: "unexpected", err: errors.New("db down"), status: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newAgendaApp(&stubAgendaService{err: tc.err}, nil, 10, "student", "")
			resp, payload := doRequest(t, app, http.MethodGet, "/api/v2/courses/3/progress", nil)
			require.Equal(t, tc.status, resp.StatusCode)
			require.False(t, payload.Success)
		})
	}
}

func TestAgendaHandlerRequiresAuthentication(t *testing.T) {
	app := newAgendaApp(&stubAgendaService{}, nil, 0, "", "")

	resp, _ := doRequest(t, app, http.MethodGet, "/api/v2/courses/3/agenda", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAgendaHandlerPostAlerts(t *testing.T) {
	alerts := &stubAlertService{}
	app := newAgendaApp(&stubAgendaService{}, alerts, 2, "teacher", "")

	resp, payload := doRequest(t, app, http.MethodPost, "/api/v2/courses/3/alerts?user_id=10", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "alerts dispatched", payload.Message)
	require.Equal(t, uint(3), alerts.courseID)
	require.Equal(t, uint(10), alerts.userID)

	var data dto.AlertDispatchResponse
	require.NoError(t, json.Unmarshal(payload.Data, &data))
	require.Len(t, data.Published, 1)

	resp, payload = doRequest(t, app, http.MethodPost, "/api/v2/courses/3/alerts", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, payload.Details, "user_id")
}

func TestAgendaHandlerPostAlertsGuards(t *testing.T) {
	student := newAgendaApp(&stubAgendaService{}, &stubAlertService{}, 10, "student", "")
	resp, _ := doRequest(t, student, http.MethodPost, "/api/v2/courses/3/alerts?user_id=10", nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	unavailable := newAgendaApp(&stubAgendaService{}, &stubAlertService{err: service.ErrAlertsUnavailable}, 2, "admin", "")
	resp, _ = doRequest(t, unavailable, http.MethodPost, "/api/v2/courses/3/alerts?user_id=10", nil)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
