package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleRequestData() RequestData {
	quiz := trackedActivity(2, TypeQuiz)
	quiz.Section = 1
	quiz.Config = RawConfig{"timeclose": unix(testNow.Add(-24 * time.Hour))}

	hidden := trackedActivity(3, TypeWiki)
	hidden.Section = 1
	hidden.Visible = false

	intro := trackedActivity(4, TypeForum)
	intro.Section = 0

	scorm := trackedActivity(5, TypeScorm)
	scorm.Section = 2

	return RequestData{
		Sections: []Section{
			{Number: 2, Name: "Week 2", Visible: true},
			{Number: 0, Name: "General", Visible: true},
			{Number: 1, Name: "Week 1", Visible: true},
			{Number: 3, Name: "Draft week", Visible: false},
		},
		Activities: []Activity{assignment(RawConfig{"duedate": unix(testNow.Add(48 * time.Hour))}), quiz, hidden, intro, scorm},
		Completions: []CompletionRecord{
			{ActivityID: 5, Marker: CompletionComplete, ModifiedAt: testNow.Add(-time.Hour)},
		},
		Records: []DeliveryRecord{
			{ActivityID: 2, Kind: KindAttempt, Status: "finished", At: testNow.Add(-30 * time.Hour), Score: floatPointer(9)},
		},
		GradeItems: []GradeItem{
			{ID: 21, ActivityID: 2, ItemNumber: 1, GradePass: 5, FinalGrade: floatPointer(9)},
		},
		Extensions: []Extension{
			{ActivityID: 1, Until: testNow.Add(96 * time.Hour)},
		},
	}
}

func TestRequestContextBuild(t *testing.T) {
	course := Course{ID: 10, CompletionEnabled: true}
	rc := NewRequestContext(course, 42, DefaultSettings(), Viewer{}, testNow, sampleRequestData())

	report := rc.Build()

	require.Len(t, report.Sections, 2)
	require.Equal(t, 1, report.Sections[0].Section.Number)
	require.Equal(t, 2, report.Sections[1].Section.Number)

	week1 := report.Sections[0].Activities
	require.Len(t, week1, 2)
	require.Equal(t, StatePending, week1[0].Evaluation.State)
	require.True(t, week1[0].Window.Extended())
	require.Equal(t, 4, week1[0].Evaluation.DaysRemaining)
	require.Equal(t, StateApproved, week1[1].Evaluation.State)

	week2 := report.Sections[1].Activities
	require.Len(t, week2, 1)
	require.Equal(t, StateCompleted, week2[0].Evaluation.State)
	require.True(t, week2[0].CompletedAt.Equal(testNow.Add(-time.Hour)))

	require.True(t, report.HasProgress)
	require.Equal(t, 25.0, report.Progress)
	require.Equal(t, "#e27085", report.ProgressColor)
}

func TestRequestContextBuildForPrivilegedViewer(t *testing.T) {
	settings := DefaultSettings()
	settings.IncludeSection0 = true
	settings.ExcludedTypes = []ActivityType{TypeScorm}

	rc := NewRequestContext(Course{ID: 10}, 42, settings, Viewer{CanViewHiddenActivities: true}, testNow, sampleRequestData())
	report := rc.Build()

	numbers := make([]int, 0, len(report.Sections))
	for _, section := range report.Sections {
		numbers = append(numbers, section.Section.Number)
	}
	require.Equal(t, []int{0, 1, 2, 3}, numbers)
	require.Len(t, report.Sections[1].Activities, 3)
	require.Empty(t, report.Sections[2].Activities)
	require.False(t, report.HasProgress)
	require.Empty(t, report.ProgressColor)
}
