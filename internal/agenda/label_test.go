package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatInfoDate(t *testing.T) {
	morning := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 12, 17, 30, 0, 0, time.UTC)
	nextWeek := time.Date(2025, time.March, 19, 9, 0, 0, 0, time.UTC)
	past := testNow.Add(-72 * time.Hour)

	tests := []struct {
		name     string
		state    State
		from     time.Time
		until    time.Time
		expected string
	}{
		{name: "no dates", state: StatePending},
		{name: "from only", state: StateBlocked, from: morning, expected: "available from 2025-03-12 09:00"},
		{name: "same day", state: StateBlocked, from: morning, until: evening, expected: "available on 2025-03-12 from 09:00 to 17:30"},
		{name: "between", state: StateBlocked, from: morning, until: nextWeek, expected: "available between 2025-03-12 and 2025-03-19"},
		{name: "open window", state: StatePending, from: past, until: nextWeek, expected: "available until 2025-03-19 09:00"},
		{name: "delivered", state: StateDelivered, until: nextWeek, expected: "delivered until 2025-03-19 09:00"},
		{name: "expired by date", state: StateApproved, from: past.Add(-time.Hour), until: past, expected: "expired until 2025-03-07 12:00"},
		{name: "expired by state", state: StateFailed, until: nextWeek, expected: "expired until 2025-03-19 09:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, FormatInfoDate(stubLocale{}, tc.state, tc.from, tc.until, testNow))
		})
	}
}

func TestFullStateLabel(t *testing.T) {
	due := testNow.Add(-48 * time.Hour)
	cutoff := testNow.Add(72 * time.Hour)
	settings := DefaultSettings()

	pending := Evaluation{State: StatePending, HasDeadline: true, DaysRemaining: 4}
	require.Equal(t, "4 days left", FullStateLabel(stubLocale{}, pending, Window{}, settings, testNow))

	noDeadline := Evaluation{State: StatePending}
	require.Equal(t, "fullstate_pending", FullStateLabel(stubLocale{}, noDeadline, Window{}, settings, testNow))

	overdue := Evaluation{State: StatePending, HasDeadline: true, DaysRemaining: -3}
	require.Equal(t, "fullstate_pending", FullStateLabel(stubLocale{}, overdue, Window{}, settings, testNow))

	retarded := Evaluation{State: StateRetarded}
	split := FullStateLabel(stubLocale{}, retarded, Window{Until: due, CloseCutoff: cutoff}, settings, testNow)
	require.Equal(t, "late 2 days", split)

	settings.RetardedDisplay = RetardedMerged
	merged := FullStateLabel(stubLocale{}, retarded, Window{Until: due, CloseCutoff: cutoff}, settings, testNow)
	require.Equal(t, "3 days left", merged)

	late := FullStateLabel(stubLocale{}, retarded, Window{Until: due}, settings, testNow)
	require.Equal(t, "late 2 days", late)

	require.Equal(t, "state_approved", StateLabel(stubLocale{}, StateApproved))
}

func TestActivityReportLabelsFallBackToCourseDates(t *testing.T) {
	course := Course{
		StartDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
	report := ActivityReport{Evaluation: Evaluation{State: StateBlocked}}

	labels := report.Labels(stubLocale{}, course, DefaultSettings(), testNow)
	require.Equal(t, "available between 2025-04-01 and 2025-06-30", labels.InfoDate)
	require.Equal(t, "state_blocked", labels.Short)

	report.Evaluation.State = StatePending
	labels = report.Labels(stubLocale{}, course, DefaultSettings(), testNow)
	require.Empty(t, labels.InfoDate)
}

func TestCategoryFor(t *testing.T) {
	future := testNow.Add(time.Hour)

	require.Equal(t, CategoryAvailable, CategoryFor(StateRetarded, time.Time{}, testNow))
	require.Equal(t, CategoryDelivered, CategoryFor(StateCompleted, future, testNow))
	require.Equal(t, CategoryExpired, CategoryFor(StateUndelivered, future, testNow))
	require.Equal(t, CategoryExpired, CategoryFor(StatePending, testNow.Add(-time.Hour), testNow))
}

func TestRetardedReportShowsLateWindow(t *testing.T) {
	window := Window{Until: testNow.Add(-48 * time.Hour), CloseCutoff: testNow.Add(72 * time.Hour)}
	report := ActivityReport{Window: window, Evaluation: Evaluation{State: StateRetarded}}

	labels := report.Labels(stubLocale{}, Course{}, DefaultSettings(), testNow)
	require.Equal(t, "late 2 days", labels.Full)
	require.Equal(t, "late but available until 2025-03-13 12:00", labels.InfoDate)
}

func TestGradeComponentName(t *testing.T) {
	tests := []struct {
		name         string
		activityType ActivityType
		component    GradeComponent
		expected     string
	}{
		{name: "forum rating", activityType: TypeForum, component: GradeComponent{ItemNumber: 0, Name: "Debate"}, expected: "forum_rating"},
		{name: "whole forum", activityType: TypeForum, component: GradeComponent{ItemNumber: 1, Name: "Debate"}, expected: "forum_wholeforum"},
		{name: "workshop submission", activityType: TypeWorkshop, component: GradeComponent{ItemNumber: 0}, expected: "workshopname_submission"},
		{name: "workshop assessment", activityType: TypeWorkshop, component: GradeComponent{ItemNumber: 1}, expected: "workshopname_assessment"},
		{name: "named item", activityType: TypeQuiz, component: GradeComponent{Name: "Quiz"}, expected: "Quiz"},
		{name: "unnamed item", activityType: TypeQuiz, component: GradeComponent{}, expected: "automaticgrade"},
		{name: "other forum item", activityType: TypeForum, component: GradeComponent{ItemNumber: 3, Name: "Extra"}, expected: "Extra"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, GradeComponentName(stubLocale{}, tc.activityType, tc.component))
		})
	}
}
