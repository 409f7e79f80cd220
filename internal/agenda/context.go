package agenda

import (
	"sort"
	"time"
)

// Section is a course section holding activities.
type Section struct {
	Number           int
	Name             string
	Visible          bool
	AvailabilityHTML string
}

// CompletionRecord is the completion row of one activity for the student.
type CompletionRecord struct {
	ActivityID int64
	Marker     CompletionMarker
	ModifiedAt time.Time
}

// Extension relaxes the due date of one activity for the student or a group.
type Extension struct {
	ActivityID int64
	Until      time.Time
}

// RequestData is everything fetched from the LMS for one student and course.
type RequestData struct {
	Sections    []Section
	Activities  []Activity
	Completions []CompletionRecord
	Records     []DeliveryRecord
	GradeItems  []GradeItem
	Extensions  []Extension
}

// RequestContext indexes the data of one request by activity. It is built per
// request and must not outlive it.
type RequestContext struct {
	Now      time.Time
	UserID   int64
	Course   Course
	Settings Settings
	Viewer   Viewer
	Adjuster BoundsAdjuster

	sections    []Section
	activities  []Activity
	completions map[int64]CompletionRecord
	records     map[int64][]DeliveryRecord
	grades      map[int64][]GradeItem
	extensions  map[int64][]time.Time
}

// NewRequestContext indexes data for the evaluation loop.
func NewRequestContext(course Course, userID int64, settings Settings, viewer Viewer, now time.Time, data RequestData) *RequestContext {
	rc := &RequestContext{
		Now:         now,
		UserID:      userID,
		Course:      course,
		Settings:    settings,
		Viewer:      viewer,
		Adjuster:    PassThroughAdjuster{},
		sections:    append([]Section(nil), data.Sections...),
		activities:  append([]Activity(nil), data.Activities...),
		completions: make(map[int64]CompletionRecord, len(data.Completions)),
		records:     make(map[int64][]DeliveryRecord),
		grades:      make(map[int64][]GradeItem),
		extensions:  make(map[int64][]time.Time),
	}

	for _, completion := range data.Completions {
		rc.completions[completion.ActivityID] = completion
	}
	for _, record := range data.Records {
		rc.records[record.ActivityID] = append(rc.records[record.ActivityID], record)
	}
	for _, item := range data.GradeItems {
		rc.grades[item.ActivityID] = append(rc.grades[item.ActivityID], item)
	}
	for _, items := range rc.grades {
		sort.SliceStable(items, func(i, j int) bool { return items[i].ItemNumber < items[j].ItemNumber })
	}
	for _, extension := range data.Extensions {
		rc.extensions[extension.ActivityID] = append(rc.extensions[extension.ActivityID], extension.Until)
	}
	sort.SliceStable(rc.sections, func(i, j int) bool { return rc.sections[i].Number < rc.sections[j].Number })

	return rc
}

// ActivityReport is the evaluated agenda entry of one activity.
type ActivityReport struct {
	Activity    Activity
	Window      Window
	Evaluation  Evaluation
	Grades      GradeSummary
	CompletedAt time.Time
}

// SectionReport lists the evaluated activities of one section.
type SectionReport struct {
	Section    Section
	Activities []ActivityReport
}

// Report is the agenda of one student in one course.
type Report struct {
	Sections      []SectionReport
	Progress      float64
	HasProgress   bool
	ProgressColor string
}

// EvaluateActivity runs the resolver, detector, aggregator and state machine
// for one activity.
func (rc *RequestContext) EvaluateActivity(activity Activity) ActivityReport {
	window := ResolveWindow(activity, rc.extensions[activity.ID], rc.Now)
	records := rc.records[activity.ID]
	grades := AggregateGrades(rc.grades[activity.ID], rc.Viewer, rc.Settings, rc.Adjuster, rc.Now)

	var marker *CompletionMarker
	var completedAt time.Time
	if completion, ok := rc.completions[activity.ID]; ok {
		value := completion.Marker
		marker = &value
		completedAt = completion.ModifiedAt
	}

	evaluation := Evaluate(EvaluationInput{
		Activity:    activity,
		Window:      window,
		Completion:  marker,
		DeliveredAt: DetectDelivery(activity, records),
		Records:     records,
		Grades:      grades,
		Course:      rc.Course,
		Settings:    rc.Settings,
		Now:         rc.Now,
	})

	return ActivityReport{
		Activity:    activity,
		Window:      window,
		Evaluation:  evaluation,
		Grades:      grades,
		CompletedAt: completedAt,
	}
}

// Build evaluates every reportable activity, grouped by section, and the
// course progress.
func (rc *RequestContext) Build() Report {
	bySection := make(map[int][]Activity)
	for _, activity := range rc.activities {
		if rc.Settings.Excludes(activity.Type) {
			continue
		}
		if !activity.Visible && !rc.Viewer.CanViewHiddenActivities {
			continue
		}
		bySection[activity.Section] = append(bySection[activity.Section], activity)
	}

	report := Report{Sections: make([]SectionReport, 0, len(rc.sections))}
	for _, section := range rc.sections {
		if section.Number == 0 && !rc.Settings.IncludeSection0 {
			continue
		}
		if !section.Visible && !rc.Viewer.CanViewHiddenActivities {
			continue
		}

		entry := SectionReport{Section: section, Activities: make([]ActivityReport, 0, len(bySection[section.Number]))}
		for _, activity := range bySection[section.Number] {
			entry.Activities = append(entry.Activities, rc.EvaluateActivity(activity))
		}
		report.Sections = append(report.Sections, entry)
	}

	markers := make(map[int64]CompletionMarker, len(rc.completions))
	for id, completion := range rc.completions {
		markers[id] = completion.Marker
	}
	report.Progress, report.HasProgress = CourseProgress(rc.Course, rc.activities, markers, rc.Settings)
	if report.HasProgress {
		report.ProgressColor = ProgressColor(report.Progress, rc.Settings.ProgressColors)
	}

	return report
}

// Labels are the localized texts of an activity report.
type Labels struct {
	Full     string
	Short    string
	InfoDate string
}

// Labels renders the state and date labels of r. Blocked activities fall back
// to the course dates when the window has none; retarded ones show until when
// late delivery stays open.
func (r ActivityReport) Labels(locale Locale, course Course, settings Settings, now time.Time) Labels {
	from, until := r.Window.From, r.Window.Until
	if r.Evaluation.State == StateBlocked {
		if from.IsZero() {
			from = course.StartDate
		}
		if until.IsZero() {
			until = course.EndDate
		}
	}

	labels := Labels{
		Full:     FullStateLabel(locale, r.Evaluation, r.Window, settings, now),
		Short:    StateLabel(locale, r.Evaluation.State),
		InfoDate: FormatInfoDate(locale, r.Evaluation.State, from, until, now),
	}
	if r.Evaluation.State == StateRetarded {
		if info := RetardedInfoDate(locale, r.Window); info != "" {
			labels.InfoDate = info
		}
	}
	return labels
}
