package agenda

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// State is the agenda state of one activity for one student.
type State string

const (
	StateActive      State = "active"
	StateBlocked     State = "blocked"
	StatePending     State = "pending"
	StateCompleted   State = "completed"
	StateDelivered   State = "delivered"
	StateApproved    State = "approved"
	StateFailed      State = "failed"
	StateUndelivered State = "undelivered"
	StateRetarded    State = "retarded"
)

// States lists every state in display order.
var States = []State{
	StateActive,
	StateBlocked,
	StatePending,
	StateCompleted,
	StateDelivered,
	StateApproved,
	StateFailed,
	StateUndelivered,
	StateRetarded,
}

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	for _, known := range States {
		if s == known {
			return true
		}
	}
	return false
}

// ActivityType is the LMS module name of an activity.
type ActivityType string

const (
	TypeAssign   ActivityType = "assign"
	TypeChoice   ActivityType = "choice"
	TypeData     ActivityType = "data"
	TypeFeedback ActivityType = "feedback"
	TypeForum    ActivityType = "forum"
	TypeGlossary ActivityType = "glossary"
	TypeH5P      ActivityType = "h5pactivity"
	TypeLesson   ActivityType = "lesson"
	TypeQuiz     ActivityType = "quiz"
	TypeScorm    ActivityType = "scorm"
	TypeSurvey   ActivityType = "survey"
	TypeWiki     ActivityType = "wiki"
	TypeWorkshop ActivityType = "workshop"
)

// CompletionMarker is the raw completion state stored by the LMS.
type CompletionMarker int

const (
	CompletionIncomplete         CompletionMarker = 0
	CompletionComplete           CompletionMarker = 1
	CompletionCompletePass       CompletionMarker = 2
	CompletionCompleteFail       CompletionMarker = 3
	CompletionCompleteFailHidden CompletionMarker = 4
)

// Activity is one course module as seen by the agenda.
type Activity struct {
	ID                   int64
	Type                 ActivityType
	Name                 string
	Section              int
	Visible              bool
	Available            bool
	AvailableFrom        time.Time
	CompletionTracking   bool
	Config               RawConfig
	RestrictionsHTML     string
	CompletionConditions []string
}

// Window is the availability window of an activity. A zero time means unset.
type Window struct {
	From          time.Time
	Until         time.Time
	OriginalUntil time.Time
	CloseCutoff   time.Time
}

// Extended reports whether extensions moved the due date.
func (w Window) Extended() bool {
	return !w.Until.IsZero() && !w.OriginalUntil.IsZero() && w.Until.After(w.OriginalUntil)
}

// Course holds the course-level dates the engine needs.
type Course struct {
	ID                int64
	StartDate         time.Time
	EndDate           time.Time
	CompletionEnabled bool
}

// Viewer carries the capabilities of the user looking at the report.
type Viewer struct {
	CanViewHidden           bool
	CanViewHiddenActivities bool
}

// RawConfig is the per-type activity configuration as a flat key/value record.
type RawConfig map[string]interface{}

// Timestamp reads key as a unix timestamp. Missing, malformed or non-positive
// values yield the zero time.
func (c RawConfig) Timestamp(key string) time.Time {
	seconds, ok := c.Int(key)
	if !ok || seconds <= 0 {
		return time.Time{}
	}
	return time.Unix(seconds, 0).UTC()
}

// Int reads key as an integer.
func (c RawConfig) Int(key string) (int64, bool) {
	if c == nil {
		return 0, false
	}
	value, ok := c[key]
	if !ok || value == nil {
		return 0, false
	}

	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			return parsed, true
		}
		if parsed, err := v.Float64(); err == nil {
			return int64(parsed), true
		}
	case string:
		trimmed := strings.TrimSpace(v)
		if parsed, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return parsed, true
		}
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int64(parsed), true
		}
	}

	return 0, false
}

// Flag reads key as a boolean switch; any non-zero number is true.
func (c RawConfig) Flag(key string) bool {
	value, ok := c.Int(key)
	return ok && value != 0
}
