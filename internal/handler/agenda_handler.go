package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-agenda-api/internal/dto"
	"github.com/noah-isme/course-agenda-api/internal/middleware"
	"github.com/noah-isme/course-agenda-api/internal/service"
	"github.com/noah-isme/course-agenda-api/internal/utils"
)

// AgendaHandler exposes the course agenda endpoints.
type AgendaHandler struct {
	agendas   service.AgendaService
	alerts    service.AlertService
	languages []string
	validator *queryValidator
	logger    zerolog.Logger
}

// NewAgendaHandler creates a new handler instance. languages lists the tags
// offered to Accept-Language negotiation.
func NewAgendaHandler(agendas service.AgendaService, alerts service.AlertService, languages []string, logger zerolog.Logger) *AgendaHandler {
	return &AgendaHandler{
		agendas:   agendas,
		alerts:    alerts,
		languages: languages,
		validator: newQueryValidator(),
		logger:    logger.With().Str("component", "agenda_handler").Logger(),
	}
}

// Register attaches the agenda routes to a /courses group.
func (h *AgendaHandler) Register(router fiber.Router) {
	authenticated := middleware.AuthOptions{Role: middleware.AuthRoleAny, RequireUser: true}

	router.Get("/:courseId/agenda", middleware.WithAuth(h.getAgenda, authenticated))
	router.Get("/:courseId/progress", middleware.WithAuth(h.getProgress, authenticated))
	if h.alerts != nil {
		router.Post("/:courseId/alerts", middleware.RequireRole(middleware.StaffRoles...), middleware.WithAuth(h.postAlerts, authenticated))
	}
}

func (h *AgendaHandler) getAgenda(c *fiber.Ctx) error {
	req, ok, err := h.agendaRequest(c)
	if !ok {
		return err
	}

	response, err := h.agendas.GetAgenda(c.UserContext(), req)
	if err != nil {
		return h.handleServiceError(c, err, "failed to build agenda", req)
	}

	return utils.OK(c, response, "agenda retrieved", fiber.Map{"lang": response.Lang})
}

func (h *AgendaHandler) getProgress(c *fiber.Ctx) error {
	req, ok, err := h.agendaRequest(c)
	if !ok {
		return err
	}

	response, err := h.agendas.GetProgress(c.UserContext(), req)
	if err != nil {
		return h.handleServiceError(c, err, "failed to compute progress", req)
	}

	return utils.SendSuccess(c, "progress retrieved", response)
}

func (h *AgendaHandler) postAlerts(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil || courseID <= 0 {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid course id", nil)
	}

	var query dto.AlertQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid query parameters", nil)
	}
	if details, err := h.validator.Struct(query); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", details)
	}

	response, err := h.alerts.Dispatch(c.UserContext(), uint(courseID), query.UserID)
	if err != nil {
		if errors.Is(err, service.ErrAlertsUnavailable) {
			return utils.Fail(c, fiber.StatusServiceUnavailable, err.Error(), nil)
		}
		return h.handleServiceError(c, err, "failed to dispatch alerts", service.AgendaRequest{CourseID: uint(courseID), UserID: query.UserID})
	}

	requestLogger(h.logger, c).Info().
		Uint("course_id", response.CourseID).
		Uint("user_id", response.UserID).
		Int("published", len(response.Published)).
		Msg("alerts dispatched")

	return utils.SendSuccess(c, "alerts dispatched", response)
}

// agendaRequest parses the route and query. When ok is false the error
// response has already been written.
func (h *AgendaHandler) agendaRequest(c *fiber.Ctx) (service.AgendaRequest, bool, error) {
	courseID, err := c.ParamsInt("courseId")
	if err != nil || courseID <= 0 {
		return service.AgendaRequest{}, false, utils.Fail(c, fiber.StatusBadRequest, "invalid course id", nil)
	}

	var query dto.AgendaQuery
	if err := c.QueryParser(&query); err != nil {
		return service.AgendaRequest{}, false, utils.Fail(c, fiber.StatusBadRequest, "invalid query parameters", nil)
	}
	if details, err := h.validator.Struct(query); err != nil {
		return service.AgendaRequest{}, false, utils.Fail(c, fiber.StatusBadRequest, "validation failed", details)
	}

	return service.AgendaRequest{
		CourseID:    uint(courseID),
		UserID:      query.UserID,
		ViewerID:    userIDFromContext(c),
		ViewerStaff: middleware.IsStaffRole(userRoleFromContext(c)),
		Lang:        requestLang(c, query.Lang, h.languages),
	}, true, nil
}

func (h *AgendaHandler) handleServiceError(c *fiber.Ctx, err error, message string, req service.AgendaRequest) error {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return utils.Fail(c, fiber.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrUserNotEnrolled):
		return utils.Fail(c, fiber.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrForbiddenViewer):
		return utils.Fail(c, fiber.StatusForbidden, err.Error(), nil)
	}

	requestLogger(h.logger, c).Error().
		Err(err).
		Uint("course_id", req.CourseID).
		Uint("user_id", req.Target()).
		Msg(message)
	return utils.Fail(c, fiber.StatusInternalServerError, message, nil)
}
