package agenda

import "math"

const completedColor = "#50b447"

// CourseProgress returns the percentage of completion-tracked activities the
// student has completed, rounded to one decimal. It reports false when the
// course does not track completion or has no tracked activities.
func CourseProgress(course Course, activities []Activity, completions map[int64]CompletionMarker, settings Settings) (float64, bool) {
	if !course.CompletionEnabled {
		return 0, false
	}

	total := 0
	completed := 0
	for _, activity := range activities {
		if !activity.Visible || !activity.CompletionTracking || settings.Excludes(activity.Type) {
			continue
		}
		total++
		if marker, ok := completions[activity.ID]; ok && marker != CompletionIncomplete {
			completed++
		}
	}

	if total == 0 {
		return 0, false
	}
	if completed == 0 {
		return 0, true
	}

	return roundTo(float64(completed)/float64(total)*100, 1), true
}

// ProgressColor picks the colour of the first threshold that covers progress.
func ProgressColor(progress float64, thresholds []ProgressThreshold) string {
	if len(thresholds) == 0 {
		thresholds = DefaultProgressColors()
	}
	for _, threshold := range thresholds {
		if progress <= float64(threshold.Limit) {
			return threshold.Color
		}
	}
	return completedColor
}

// CourseDuration returns the course length in the configured unit, rounded to
// one decimal. It reports false when the course has no end date.
func CourseDuration(course Course, format DurationFormat) (float64, DurationFormat, bool) {
	if course.EndDate.IsZero() {
		return 0, format, false
	}

	days := course.EndDate.Sub(course.StartDate).Hours() / 24
	if format == DurationDays {
		return roundTo(days, 1), DurationDays, true
	}
	return roundTo(days/7, 1), DurationWeeks, true
}

// StudyHours converts academic credits into hours of dedication. It reports
// false when the course has no credits or no conversion rate is configured.
func StudyHours(credits, hoursByCredit float64) (float64, bool) {
	if credits == 0 || hoursByCredit <= 0 {
		return 0, false
	}
	return roundTo(credits*hoursByCredit, 1), true
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
