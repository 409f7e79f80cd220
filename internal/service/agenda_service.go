package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/course-agenda-api/internal/agenda"
	"github.com/noah-isme/course-agenda-api/internal/dto"
	"github.com/noah-isme/course-agenda-api/internal/i18n"
	"github.com/noah-isme/course-agenda-api/internal/models"
	"github.com/noah-isme/course-agenda-api/internal/observability"
	"github.com/noah-isme/course-agenda-api/internal/repository"
)

var (
	// ErrCourseNotFound indicates the requested course does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrUserNotEnrolled indicates the target user has no gradable enrolment in the course.
	ErrUserNotEnrolled = errors.New("user is not enrolled as a student in the course")
	// ErrForbiddenViewer indicates the caller may not read another user's agenda.
	ErrForbiddenViewer = errors.New("viewer is not allowed to see this agenda")
)

// AgendaRequest identifies whose agenda is built and who is looking at it.
type AgendaRequest struct {
	CourseID    uint
	UserID      uint
	ViewerID    uint
	ViewerStaff bool
	Lang        string
}

// Target returns the user whose agenda is requested. A zero UserID means the viewer.
func (r AgendaRequest) Target() uint {
	if r.UserID == 0 {
		return r.ViewerID
	}
	return r.UserID
}

// AgendaSnapshot is an evaluated agenda together with the inputs it was built from.
type AgendaSnapshot struct {
	Course   models.Course
	UserID   uint
	Settings agenda.Settings
	Now      time.Time
	Report   agenda.Report
	Contacts []string
	Credits  *float64
}

// AgendaService builds student agendas.
type AgendaService interface {
	GetAgenda(ctx context.Context, req AgendaRequest) (dto.AgendaResponse, error)
	GetProgress(ctx context.Context, req AgendaRequest) (dto.ProgressResponse, error)
	Snapshot(ctx context.Context, req AgendaRequest) (AgendaSnapshot, error)
}

type agendaService struct {
	courses  repository.CourseRepository
	records  repository.AgendaRepository
	bundle   *i18n.Bundle
	settings agenda.Settings
	names    *bluemonday.Policy
	markup   *bluemonday.Policy
	logger   zerolog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewAgendaService constructs the agenda service.
func NewAgendaService(courses repository.CourseRepository, records repository.AgendaRepository, bundle *i18n.Bundle, settings agenda.Settings, logger zerolog.Logger) AgendaService {
	return &agendaService{
		courses:  courses,
		records:  records,
		bundle:   bundle,
		settings: settings,
		names:    bluemonday.StrictPolicy(),
		markup:   bluemonday.UGCPolicy(),
		logger:   logger.With().Str("component", "agenda_service").Logger(),
		tracer:   otel.Tracer("github.com/noah-isme/course-agenda-api/internal/service/agenda"),
		now:      time.Now,
	}
}

func (s *agendaService) GetAgenda(ctx context.Context, req AgendaRequest) (dto.AgendaResponse, error) {
	snapshot, err := s.Snapshot(ctx, req)
	if err != nil {
		return dto.AgendaResponse{}, err
	}

	locale := s.bundle.Locale(req.Lang)
	return s.render(snapshot, locale), nil
}

func (s *agendaService) GetProgress(ctx context.Context, req AgendaRequest) (dto.ProgressResponse, error) {
	snapshot, err := s.Snapshot(ctx, req)
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	response := dto.ProgressResponse{
		CourseID:  snapshot.Course.ID,
		UserID:    snapshot.UserID,
		Available: snapshot.Report.HasProgress,
	}
	if snapshot.Report.HasProgress {
		progress := snapshot.Report.Progress
		response.Progress = &progress
		response.Color = snapshot.Report.ProgressColor
	}
	return response, nil
}

func (s *agendaService) Snapshot(ctx context.Context, req AgendaRequest) (AgendaSnapshot, error) {
	target := req.Target()
	if target == 0 {
		return AgendaSnapshot{}, ErrForbiddenViewer
	}
	if target != req.ViewerID && !req.ViewerStaff {
		return AgendaSnapshot{}, ErrForbiddenViewer
	}

	ctx, span := s.tracer.Start(ctx, "agenda.build", trace.WithAttributes(
		attribute.Int64("agenda.course_id", int64(req.CourseID)),
		attribute.Int64("agenda.user_id", int64(target)),
		attribute.Bool("agenda.viewer_staff", req.ViewerStaff),
	))
	defer span.End()

	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AgendaSnapshot{}, ErrCourseNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "load course")
		return AgendaSnapshot{}, fmt.Errorf("load course %d: %w", req.CourseID, err)
	}

	enrolment, err := s.courses.GetEnrolment(ctx, course.ID, target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AgendaSnapshot{}, ErrUserNotEnrolled
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "load enrolment")
		return AgendaSnapshot{}, fmt.Errorf("load enrolment: %w", err)
	}
	if !enrolment.Gradable() {
		return AgendaSnapshot{}, ErrUserNotEnrolled
	}

	data, err := s.records.Load(ctx, course.ID, target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load agenda records")
		return AgendaSnapshot{}, fmt.Errorf("load agenda records: %w", err)
	}

	now := s.now()
	viewer := agenda.Viewer{
		CanViewHidden:           req.ViewerStaff,
		CanViewHiddenActivities: req.ViewerStaff,
	}

	rc := agenda.NewRequestContext(toAgendaCourse(course), int64(target), s.settings, viewer, now, s.toRequestData(data))
	report := rc.Build()

	activities := 0
	for _, section := range report.Sections {
		for _, entry := range section.Activities {
			activities++
			observability.ActivityStates().WithLabelValues(string(entry.Evaluation.State)).Inc()
		}
	}
	span.SetAttributes(attribute.Int("agenda.activities", activities))

	s.logger.Debug().
		Uint("course_id", course.ID).
		Uint("user_id", target).
		Int("activities", activities).
		Bool("has_progress", report.HasProgress).
		Msg("agenda built")

	contacts := make([]string, 0, len(data.Contacts))
	for _, user := range data.Contacts {
		if name := s.names.Sanitize(user.FullName()); name != "" {
			contacts = append(contacts, name)
		}
	}

	return AgendaSnapshot{
		Course:   course,
		UserID:   target,
		Settings: s.settings,
		Now:      now,
		Report:   report,
		Contacts: contacts,
		Credits:  data.Credits,
	}, nil
}

func (s *agendaService) toRequestData(data repository.AgendaData) agenda.RequestData {
	availability := make(map[uint]models.ModuleAvailability, len(data.Availability))
	for _, row := range data.Availability {
		availability[row.ModuleID] = row
	}

	out := agenda.RequestData{
		Sections:    make([]agenda.Section, 0, len(data.Sections)),
		Activities:  make([]agenda.Activity, 0, len(data.Modules)),
		Completions: make([]agenda.CompletionRecord, 0, len(data.Completions)),
		Records:     make([]agenda.DeliveryRecord, 0, len(data.Deliveries)),
		GradeItems:  make([]agenda.GradeItem, 0, len(data.GradeItems)),
		Extensions:  make([]agenda.Extension, 0, len(data.Extensions)),
	}

	for _, section := range data.Sections {
		out.Sections = append(out.Sections, agenda.Section{
			Number:           section.Section,
			Name:             s.names.Sanitize(section.Name),
			Visible:          section.Visible,
			AvailabilityHTML: s.markup.Sanitize(section.AvailabilityHTML),
		})
	}

	for _, module := range data.Modules {
		activity := agenda.Activity{
			ID:                   int64(module.ID),
			Type:                 agenda.ActivityType(module.ModuleName),
			Name:                 s.names.Sanitize(module.Name),
			Section:              module.SectionNumber,
			Visible:              module.Visible,
			Available:            true,
			CompletionTracking:   module.Completion != models.CompletionTrackingNone,
			Config:               agenda.RawConfig(module.Config),
			CompletionConditions: module.CompletionConditions,
		}
		if module.AvailableFrom != nil {
			activity.AvailableFrom = *module.AvailableFrom
		}
		if row, ok := availability[module.ID]; ok {
			activity.Available = row.Available
			activity.RestrictionsHTML = s.markup.Sanitize(row.InfoHTML)
		}
		out.Activities = append(out.Activities, activity)
	}

	for _, completion := range data.Completions {
		out.Completions = append(out.Completions, agenda.CompletionRecord{
			ActivityID: int64(completion.ModuleID),
			Marker:     agenda.CompletionMarker(completion.CompletionState),
			ModifiedAt: completion.TimeModified,
		})
	}

	for _, delivery := range data.Deliveries {
		out.Records = append(out.Records, agenda.DeliveryRecord{
			ActivityID: int64(delivery.ModuleID),
			Kind:       delivery.Kind,
			Status:     delivery.Status,
			At:         delivery.SubmittedAt,
			Score:      delivery.Score,
		})
	}

	grades := make(map[uint]models.GradeGrade, len(data.Grades))
	for _, grade := range data.Grades {
		grades[grade.ItemID] = grade
	}
	for _, item := range data.GradeItems {
		entry := agenda.GradeItem{
			ID:         int64(item.ID),
			ActivityID: int64(item.ModuleID),
			ItemNumber: item.ItemNumber,
			Name:       s.names.Sanitize(item.Name),
			Hidden:     item.Hidden,
			GradePass:  item.GradePass,
			GradeMin:   item.GradeMin,
			GradeMax:   item.GradeMax,
		}
		if item.HiddenUntil != nil {
			entry.HiddenUntil = *item.HiddenUntil
		}
		if grade, ok := grades[item.ID]; ok {
			entry.FinalGrade = grade.FinalGrade
			entry.GradeHidden = grade.Hidden
			entry.Excluded = grade.Excluded
			entry.Hint = agenda.AggregationHint{Weight: grade.AggregationWeight, Status: grade.AggregationStatus}
		}
		out.GradeItems = append(out.GradeItems, entry)
	}

	for _, extension := range data.Extensions {
		out.Extensions = append(out.Extensions, agenda.Extension{
			ActivityID: int64(extension.ModuleID),
			Until:      extension.Until,
		})
	}

	return out
}

func toAgendaCourse(course models.Course) agenda.Course {
	out := agenda.Course{
		ID:                int64(course.ID),
		StartDate:         course.StartDate,
		CompletionEnabled: course.EnableCompletion,
	}
	if course.EndDate != nil {
		out.EndDate = *course.EndDate
	}
	return out
}

func (s *agendaService) render(snapshot AgendaSnapshot, locale *i18n.Translator) dto.AgendaResponse {
	course := toAgendaCourse(snapshot.Course)
	settings := snapshot.Settings

	response := dto.AgendaResponse{
		CourseID:    snapshot.Course.ID,
		CourseName:  s.names.Sanitize(snapshot.Course.FullName),
		UserID:      snapshot.UserID,
		Lang:        locale.Lang(),
		GeneratedAt: snapshot.Now,
		StartDate:   locale.Text("notdefined"),
		EndDate:     locale.Text("noenddate"),
		Duration:    locale.Text("notdefined"),
		Teachers:    append([]string{}, snapshot.Contacts...),
		Summary:     make(map[string]int, len(agenda.States)),
		Sections:    make([]dto.AgendaSection, 0, len(snapshot.Report.Sections)),
		Legend:      make([]dto.AgendaStateKey, 0, len(agenda.States)),
	}

	if !course.StartDate.IsZero() {
		response.StartDate = locale.FormatDate(course.StartDate)
	}
	if !course.EndDate.IsZero() {
		response.EndDate = locale.FormatDate(course.EndDate)
	}
	if length, format, ok := agenda.CourseDuration(course, settings.DurationFormat); ok {
		response.Duration = locale.Text("duration_"+string(format), locale.FormatNumber(length, 1))
	}
	if snapshot.Credits != nil {
		credits := *snapshot.Credits
		response.Credits = &credits
		if hours, ok := agenda.StudyHours(credits, settings.HoursByCredit); ok {
			response.Hours = &hours
			response.StudyTime = locale.Text("studytime", locale.FormatNumber(hours, 1), locale.FormatNumber(credits, 1))
		}
	}
	if snapshot.Report.HasProgress {
		progress := snapshot.Report.Progress
		response.Progress = &progress
		response.ProgressColor = snapshot.Report.ProgressColor
	}

	for _, state := range agenda.States {
		option := settings.StateOptions[state]
		response.Summary[string(state)] = 0
		response.Legend = append(response.Legend, dto.AgendaStateKey{
			State: string(state),
			Label: agenda.StateLabel(locale, state),
			Color: option.Color,
			Icon:  option.Icon,
		})
	}

	for _, section := range snapshot.Report.Sections {
		entry := dto.AgendaSection{
			Number:       section.Section.Number,
			Name:         section.Section.Name,
			Restrictions: section.Section.AvailabilityHTML,
			Activities:   make([]dto.AgendaActivity, 0, len(section.Activities)),
		}
		for _, report := range section.Activities {
			response.Summary[string(report.Evaluation.State)]++
			entry.Activities = append(entry.Activities, renderActivity(report, locale, course, settings, snapshot.Now))
		}
		response.Sections = append(response.Sections, entry)
	}

	return response
}

func renderActivity(report agenda.ActivityReport, locale *i18n.Translator, course agenda.Course, settings agenda.Settings, now time.Time) dto.AgendaActivity {
	evaluation := report.Evaluation
	labels := report.Labels(locale, course, settings, now)
	option := settings.StateOptions[evaluation.State]

	conditions := report.Activity.CompletionConditions
	if conditions == nil {
		conditions = []string{}
	}

	activity := dto.AgendaActivity{
		ID:                   uint(report.Activity.ID),
		Type:                 string(report.Activity.Type),
		Name:                 report.Activity.Name,
		Visible:              report.Activity.Visible,
		State:                string(evaluation.State),
		FullStateLabel:       labels.Full,
		ShortStateLabel:      labels.Short,
		InfoDateLabel:        labels.InfoDate,
		Color:                option.Color,
		Icon:                 option.Icon,
		WeighingPercent:      report.Grades.Weighing + "%",
		Grades:               make([]dto.AgendaGrade, 0, len(report.Grades.Components)),
		Delivered:            evaluation.Delivered,
		DeliveredAt:          timePointer(evaluation.DeliveredAt),
		CompletedAt:          timePointer(report.CompletedAt),
		RequiresFeedback:     evaluation.RequiresFeedback,
		DueSoon:              evaluation.DueSoon,
		GradingOverdue:       evaluation.GradingOverdue,
		Restrictions:         report.Activity.RestrictionsHTML,
		CompletionConditions: conditions,
		Window: dto.AgendaWindow{
			From:          timePointer(report.Window.From),
			Until:         timePointer(report.Window.Until),
			OriginalUntil: timePointer(report.Window.OriginalUntil),
			CloseCutoff:   timePointer(report.Window.CloseCutoff),
		},
	}

	if evaluation.State == agenda.StatePending {
		if days, ok := evaluation.Countdown(); ok {
			activity.DaysRemaining = &days
		}
	} else if evaluation.HasDeadline {
		days := evaluation.DaysRemaining
		activity.DaysRemaining = &days
	}

	if report.Window.Extended() {
		activity.Extension = &dto.AgendaExtension{
			Until: report.Window.Until,
			Label: locale.Text("extensiondate", locale.FormatDateTime(report.Window.Until)),
		}
	}

	for _, component := range report.Grades.Components {
		grade := dto.AgendaGrade{
			ItemID:   uint(component.ItemID),
			Name:     agenda.GradeComponentName(locale, report.Activity.Type, component),
			Visible:  component.Visible,
			Grade:    component.Formatted,
			Min:      component.Min,
			Max:      component.Max,
			Passed:   component.Passed,
			Weighing: component.Weighing + "%",
		}
		if component.Visible {
			grade.Value = component.Value
		}
		activity.Grades = append(activity.Grades, grade)
	}

	return activity
}

func timePointer(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	return &value
}
