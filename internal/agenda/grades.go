package agenda

import (
	"strconv"
	"strings"
	"time"
)

// NoGrade is the placeholder shown for components without a grade.
const NoGrade = "-"

// AggregationHint is the grading engine's view of an item in the course total.
type AggregationHint struct {
	Weight float64
	Status string
}

// GradeItem is one grade book item of an activity with the student's grade.
type GradeItem struct {
	ID          int64
	ActivityID  int64
	ItemNumber  int
	Name        string
	Hidden      bool
	HiddenUntil time.Time
	GradePass   float64
	GradeMin    float64
	GradeMax    float64
	FinalGrade  *float64
	GradeHidden bool
	Excluded    bool
	Hint        AggregationHint
}

// AdjustedGrade is a grade after hidden-item bounds adjustment.
type AdjustedGrade struct {
	Grade *float64
	Min   float64
	Max   float64
	Hint  AggregationHint
}

// BoundsAdjuster computes the virtual grade a student sees when hidden items
// are blanked out of the totals.
type BoundsAdjuster interface {
	AdjustBounds(item GradeItem) AdjustedGrade
}

// PassThroughAdjuster returns the stored grade and bounds unchanged.
type PassThroughAdjuster struct{}

// AdjustBounds implements BoundsAdjuster.
func (PassThroughAdjuster) AdjustBounds(item GradeItem) AdjustedGrade {
	return AdjustedGrade{Grade: item.FinalGrade, Min: item.GradeMin, Max: item.GradeMax, Hint: item.Hint}
}

// Verdict is the aggregated pass/fail outcome of an activity.
type Verdict int

const (
	VerdictIndeterminate Verdict = iota
	VerdictPass
	VerdictFail
)

// GradeComponent is one gradable dimension with visibility and verdict resolved.
type GradeComponent struct {
	ItemID     int64
	ItemNumber int
	Name       string
	Visible    bool
	Value      *float64
	Min        float64
	Max        float64
	Formatted  string
	Graded     bool
	Passed     *bool
	Weight     float64
	Weighing   string
}

// GradeSummary is the grade view of a whole activity.
type GradeSummary struct {
	Components    []GradeComponent
	HasItems      bool
	Graded        bool
	RequiresGrade bool
	Verdict       Verdict
	Weight        float64
	Weighing      string
}

// AggregateGrades resolves visibility, verdicts and weighing for the grade
// items of one activity.
func AggregateGrades(items []GradeItem, viewer Viewer, settings Settings, adjuster BoundsAdjuster, now time.Time) GradeSummary {
	if adjuster == nil {
		adjuster = PassThroughAdjuster{}
	}

	summary := GradeSummary{
		Components: make([]GradeComponent, 0, len(items)),
		HasItems:   len(items) > 0,
	}

	visibleCount := 0
	passCount := 0
	failed := false

	for _, item := range items {
		component := resolveComponent(item, viewer, settings, adjuster, now)
		summary.Components = append(summary.Components, component)

		if component.Formatted != NoGrade {
			summary.Graded = true
		}
		if !component.Visible {
			continue
		}

		visibleCount++
		summary.Weight += component.Weight

		if !component.Graded {
			summary.RequiresGrade = true
			continue
		}
		if component.Passed != nil {
			if *component.Passed {
				passCount++
			} else {
				failed = true
			}
		}
	}

	switch {
	case summary.RequiresGrade || visibleCount == 0:
		summary.Verdict = VerdictIndeterminate
	case failed:
		summary.Verdict = VerdictFail
	case passCount == visibleCount:
		summary.Verdict = VerdictPass
	default:
		summary.Verdict = VerdictIndeterminate
	}

	summary.Weighing = FormatPercent(summary.Weight, settings.DecimalPoints)
	return summary
}

func resolveComponent(item GradeItem, viewer Viewer, settings Settings, adjuster BoundsAdjuster, now time.Time) GradeComponent {
	component := GradeComponent{
		ItemID:     item.ID,
		ItemNumber: item.ItemNumber,
		Name:       item.Name,
		Visible:    isItemVisible(item, viewer, now),
		Formatted:  NoGrade,
		Weighing:   FormatPercent(0, settings.DecimalPoints),
	}
	if !component.Visible {
		return component
	}

	var adjusted AdjustedGrade
	if viewer.CanViewHidden {
		adjusted = AdjustedGrade{Grade: item.FinalGrade, Min: item.GradeMin, Max: item.GradeMax, Hint: item.Hint}
	} else {
		adjusted = adjuster.AdjustBounds(item)
	}

	component.Min = adjusted.Min
	component.Max = adjusted.Max
	if !item.Excluded {
		component.Weight = adjusted.Hint.Weight
		component.Weighing = FormatPercent(component.Weight, settings.DecimalPoints)
	}

	if adjusted.Grade == nil || (item.GradeHidden && !viewer.CanViewHidden) {
		return component
	}

	value := *adjusted.Grade
	component.Value = &value
	component.Formatted = FormatNumber(value, settings.DecimalPoints)
	component.Graded = true

	threshold := item.GradePass
	if threshold <= 0 {
		threshold = settings.DefaultGradeToPass
	}
	if threshold > 0 {
		passed := value >= threshold
		component.Passed = &passed
	}

	return component
}

func isItemVisible(item GradeItem, viewer Viewer, now time.Time) bool {
	if item.Hidden {
		return false
	}
	if !item.HiddenUntil.IsZero() && item.HiddenUntil.After(now) && !viewer.CanViewHidden {
		return false
	}
	return true
}

// FormatPercent renders a weight fraction as a percentage string without the
// percent sign. Zero renders as "0".
func FormatPercent(fraction float64, decimals int) string {
	return FormatNumber(fraction*100, decimals)
}

// FormatNumber renders value with at most decimals places, trimming trailing zeros.
func FormatNumber(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 2
	}
	if value == 0 {
		return "0"
	}

	formatted := strconv.FormatFloat(value, 'f', decimals, 64)
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimSuffix(formatted, ".")
	}
	if formatted == "-0" {
		return "0"
	}
	return formatted
}
