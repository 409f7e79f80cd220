package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/course-agenda-api/internal/agenda"
	"github.com/noah-isme/course-agenda-api/internal/dto"
	"github.com/noah-isme/course-agenda-api/internal/observability"
)

// Alert kinds published by the alert service.
const (
	AlertKindDueSoon        = "due_soon"
	AlertKindGradingOverdue = "grading_overdue"
)

// ErrAlertsUnavailable indicates no event publisher is configured.
var ErrAlertsUnavailable = errors.New("alert publishing is not configured")

// EventPublisher publishes raw messages on a subject. *nats.Conn satisfies it.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// AlertService publishes due-soon and grading-overdue alerts for a student.
type AlertService interface {
	Dispatch(ctx context.Context, courseID, userID uint) (dto.AlertDispatchResponse, error)
}

type alertService struct {
	agendas   AgendaService
	redis     *redis.Client
	publisher EventPublisher
	subject   string
	ttl       time.Duration
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewAlertService constructs the alert dispatcher. A nil redis client
// disables de-duplication.
func NewAlertService(agendas AgendaService, redisClient *redis.Client, publisher EventPublisher, subject string, ttl time.Duration, logger zerolog.Logger) AlertService {
	return &alertService{
		agendas:   agendas,
		redis:     redisClient,
		publisher: publisher,
		subject:   subject,
		ttl:       ttl,
		logger:    logger.With().Str("component", "alert_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/course-agenda-api/internal/service/alerts"),
		now:       time.Now,
	}
}

func (s *alertService) Dispatch(ctx context.Context, courseID, userID uint) (dto.AlertDispatchResponse, error) {
	if s.publisher == nil {
		return dto.AlertDispatchResponse{}, ErrAlertsUnavailable
	}

	snapshot, err := s.agendas.Snapshot(ctx, AgendaRequest{CourseID: courseID, ViewerID: userID})
	if err != nil {
		return dto.AlertDispatchResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "alerts.publish", trace.WithAttributes(
		attribute.Int64("agenda.course_id", int64(courseID)),
		attribute.Int64("agenda.user_id", int64(userID)),
	))
	defer span.End()

	response := dto.AlertDispatchResponse{
		CourseID:  courseID,
		UserID:    userID,
		Published: make([]dto.AgendaAlert, 0),
	}

	for _, section := range snapshot.Report.Sections {
		for _, report := range section.Activities {
			for _, kind := range alertKinds(report.Evaluation) {
				alert := s.buildAlert(kind, courseID, userID, report)

				fresh, err := s.claim(ctx, alert)
				if err != nil {
					s.logger.Warn().Err(err).Str("kind", kind).Uint("activity_id", alert.ActivityID).Msg("alert de-duplication unavailable")
					fresh = true
				}
				if !fresh {
					response.Skipped++
					continue
				}

				if err := s.publish(alert); err != nil {
					s.release(ctx, alert)
					span.RecordError(err)
					span.SetStatus(codes.Error, "publish alert")
					return response, err
				}
				response.Published = append(response.Published, alert)
			}
		}
	}

	span.SetAttributes(
		attribute.Int("alerts.published", len(response.Published)),
		attribute.Int("alerts.skipped", response.Skipped),
	)
	s.logger.Info().
		Uint("course_id", courseID).
		Uint("user_id", userID).
		Int("published", len(response.Published)).
		Int("skipped", response.Skipped).
		Msg("agenda alerts dispatched")

	return response, nil
}

func alertKinds(evaluation agenda.Evaluation) []string {
	var kinds []string
	if evaluation.DueSoon {
		kinds = append(kinds, AlertKindDueSoon)
	}
	if evaluation.GradingOverdue {
		kinds = append(kinds, AlertKindGradingOverdue)
	}
	return kinds
}

func (s *alertService) buildAlert(kind string, courseID, userID uint, report agenda.ActivityReport) dto.AgendaAlert {
	return dto.AgendaAlert{
		ID:           uuid.NewString(),
		Kind:         kind,
		CourseID:     courseID,
		UserID:       userID,
		ActivityID:   uint(report.Activity.ID),
		ActivityName: report.Activity.Name,
		ActivityType: string(report.Activity.Type),
		State:        string(report.Evaluation.State),
		DueAt:        timePointer(report.Window.Until),
		DeliveredAt:  timePointer(report.Evaluation.DeliveredAt),
		CreatedAt:    s.now().UTC(),
	}
}

func dedupeKey(alert dto.AgendaAlert) string {
	return fmt.Sprintf("agenda:alert:%s:%d:%d:%d", alert.Kind, alert.CourseID, alert.UserID, alert.ActivityID)
}

// claim reports whether the alert has not been sent within the de-dup TTL.
func (s *alertService) claim(ctx context.Context, alert dto.AgendaAlert) (bool, error) {
	if s.redis == nil {
		return true, nil
	}
	return s.redis.SetNX(ctx, dedupeKey(alert), alert.ID, s.ttl).Result()
}

func (s *alertService) release(ctx context.Context, alert dto.AgendaAlert) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, dedupeKey(alert)).Err(); err != nil {
		s.logger.Warn().Err(err).Str("kind", alert.Kind).Msg("failed to release alert claim")
	}
}

func (s *alertService) publish(alert dto.AgendaAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}

	subject := s.subject + "." + alert.Kind
	if err := s.publisher.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish alert on %s: %w", subject, err)
	}

	observability.AlertsPublished().WithLabelValues(alert.Kind).Inc()
	return nil
}
