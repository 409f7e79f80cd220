package agenda

import (
	"sort"
	"strconv"
	"strings"
)

// DurationFormat selects how the course length is displayed.
type DurationFormat string

const (
	DurationDays  DurationFormat = "days"
	DurationWeeks DurationFormat = "weeks"
)

// RetardedDisplay selects how late-but-open activities are labelled.
type RetardedDisplay string

const (
	// RetardedSplit gives retarded activities their own "late" wording.
	RetardedSplit RetardedDisplay = "split"
	// RetardedMerged labels retarded activities like pending ones, counting
	// days left until the close cutoff.
	RetardedMerged RetardedDisplay = "merged"
)

// Settings is the report configuration shared by every request.
type Settings struct {
	DefaultGradeToPass float64
	DaysToGrade        int
	DaysToWarn         int
	ExcludedTypes      []ActivityType
	IncludeSection0    bool
	DurationFormat     DurationFormat
	DecimalPoints      int
	ProgressColors     []ProgressThreshold
	StateOptions       map[State]StateOption
	RetardedDisplay    RetardedDisplay
	HoursByCredit      float64
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		DurationFormat:  DurationWeeks,
		DecimalPoints:   2,
		ProgressColors:  DefaultProgressColors(),
		StateOptions:    DefaultStateOptions(),
		RetardedDisplay: RetardedSplit,
	}
}

// Excludes reports whether activities of type t are left out of the report.
func (s Settings) Excludes(t ActivityType) bool {
	for _, excluded := range s.ExcludedTypes {
		if excluded == t {
			return true
		}
	}
	return false
}

// ProgressThreshold colours every progress value up to Limit.
type ProgressThreshold struct {
	Limit int
	Color string
}

// DefaultProgressColors returns the built-in progress palette.
func DefaultProgressColors() []ProgressThreshold {
	return []ProgressThreshold{
		{Limit: 25, Color: "#e27085"},
		{Limit: 50, Color: "#ff9B52"},
		{Limit: 99, Color: "#ffb950"},
		{Limit: 100, Color: "#50b447"},
	}
}

// ParseProgressColors reads "color|percent" lines. A line without a percent
// applies to 100. Empty input returns the default palette.
func ParseProgressColors(raw string) []ProgressThreshold {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultProgressColors()
	}

	byLimit := map[int]string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		color := strings.TrimSpace(parts[0])
		limit := 100
		if len(parts) == 2 {
			parsed, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				continue
			}
			limit = parsed
		}
		byLimit[limit] = color
	}

	thresholds := make([]ProgressThreshold, 0, len(byLimit))
	for limit, color := range byLimit {
		thresholds = append(thresholds, ProgressThreshold{Limit: limit, Color: color})
	}
	sort.Slice(thresholds, func(i, j int) bool {
		return thresholds[i].Limit < thresholds[j].Limit
	})
	return thresholds
}

// StateOption is the presentation of one state.
type StateOption struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// DefaultStateOptions returns the built-in icon and colour of every state.
func DefaultStateOptions() map[State]StateOption {
	return map[State]StateOption{
		StateActive:      {Icon: "core:t/go", Color: "#9c27b0"},
		StateApproved:    {Icon: "core:t/approve", Color: "#50b447"},
		StateBlocked:     {Icon: "core:t/locked", Color: "#646464"},
		StateCompleted:   {Icon: "core:i/overriden_grade", Color: "#3593ab"},
		StateDelivered:   {Icon: "tool_policy:pending", Color: "#3593ab"},
		StateFailed:      {Icon: "core:i/gradingnotifications", Color: "#d04961"},
		StatePending:     {Icon: "tool_policy:pending", Color: "#e09523"},
		StateRetarded:    {Icon: "core:e/cancel_solid_circle", Color: "#d04961"},
		StateUndelivered: {Icon: "core:i/unlock", Color: "#d04961"},
	}
}

// ParseStateOptions overlays "state|color|icon" lines on the defaults.
// Unknown states are ignored.
func ParseStateOptions(raw string) map[State]StateOption {
	options := DefaultStateOptions()

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		state := State(parts[0])
		option, ok := options[state]
		if !ok {
			continue
		}
		if len(parts) >= 2 && parts[1] != "" {
			option.Color = parts[1]
		}
		if len(parts) == 3 && parts[2] != "" {
			option.Icon = parts[2]
		}
		options[state] = option
	}

	return options
}
