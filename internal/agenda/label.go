package agenda

import (
	"math"
	"strconv"
	"time"
)

// Locale renders dates and message templates for one language.
type Locale interface {
	Location() *time.Location
	FormatDate(t time.Time) string
	FormatTime(t time.Time) string
	FormatDateTime(t time.Time) string
	Text(key string, params ...string) string
}

// LabelCategory groups states for the date label.
type LabelCategory string

const (
	CategoryAvailable LabelCategory = "available"
	CategoryDelivered LabelCategory = "delivered"
	CategoryExpired   LabelCategory = "expired"
)

// CategoryFor picks the label category of state at now.
func CategoryFor(state State, until, now time.Time) LabelCategory {
	if !until.IsZero() && now.After(until) {
		return CategoryExpired
	}

	switch state {
	case StateApproved, StateCompleted, StateDelivered:
		return CategoryDelivered
	case StateFailed, StateUndelivered:
		return CategoryExpired
	default:
		return CategoryAvailable
	}
}

// FormatInfoDate builds the human readable date label of an activity. It
// returns an empty string when neither date is known.
func FormatInfoDate(locale Locale, state State, from, until, now time.Time) string {
	if from.IsZero() && until.IsZero() {
		return ""
	}

	prefix := "infodate_" + string(CategoryFor(state, until, now)) + "_"

	switch {
	case until.IsZero():
		return locale.Text(prefix+"from", locale.FormatDateTime(from))
	case from.IsZero() || !from.After(now):
		return locale.Text(prefix+"until", locale.FormatDateTime(until))
	case sameDay(from, until, locale.Location()):
		hours := locale.Text("timehoursrange", locale.FormatTime(from), locale.FormatTime(until))
		return locale.Text(prefix+"on", locale.FormatDate(from)+" "+hours)
	default:
		return locale.Text(prefix+"between", locale.FormatDate(from), locale.FormatDate(until))
	}
}

// StateLabel returns the short name of state.
func StateLabel(locale Locale, state State) string {
	return locale.Text("state_" + string(state))
}

// FullStateLabel returns the long description of an evaluation, including the
// days left for pending activities and the late wording for retarded ones.
func FullStateLabel(locale Locale, evaluation Evaluation, window Window, settings Settings, now time.Time) string {
	switch evaluation.State {
	case StatePending:
		if left, ok := evaluation.Countdown(); ok {
			return locale.Text("fullstate_pendingdays", strconv.Itoa(left))
		}
	case StateRetarded:
		if settings.RetardedDisplay == RetardedMerged && !window.CloseCutoff.IsZero() {
			left := int(math.Round(window.CloseCutoff.Sub(now).Hours() / 24))
			return locale.Text("fullstate_pendingdays", strconv.Itoa(left))
		}
		if !window.Until.IsZero() {
			late := int(math.Round(now.Sub(window.Until).Hours() / 24))
			return locale.Text("fullstate_retarded", strconv.Itoa(late))
		}
	}

	return locale.Text("fullstate_" + string(evaluation.State))
}

// RetardedInfoDate returns the date label of a retarded activity: how long the
// late window stays open.
func RetardedInfoDate(locale Locale, window Window) string {
	if window.CloseCutoff.IsZero() {
		return ""
	}
	return locale.Text("fullstate_retardedactive", locale.FormatDateTime(window.CloseCutoff))
}

// GradeComponentName names a grade component. Forum and workshop items are
// named after the grading dimension their item number stands for; unnamed
// items of other types are automatic grades.
func GradeComponentName(locale Locale, activityType ActivityType, component GradeComponent) string {
	if key := dimensionKey(activityType, component.ItemNumber); key != "" {
		return locale.Text(key)
	}
	if component.Name != "" {
		return component.Name
	}
	return locale.Text("automaticgrade")
}

func dimensionKey(activityType ActivityType, itemNumber int) string {
	switch activityType {
	case TypeForum:
		switch itemNumber {
		case 0:
			return "forum_rating"
		case 1:
			return "forum_wholeforum"
		}
	case TypeWorkshop:
		switch itemNumber {
		case 0:
			return "workshopname_submission"
		case 1:
			return "workshopname_assessment"
		}
	}
	return ""
}

func sameDay(a, b time.Time, location *time.Location) bool {
	if location == nil {
		location = time.UTC
	}
	ay, am, ad := a.In(location).Date()
	by, bm, bd := b.In(location).Date()
	return ay == by && am == bm && ad == bd
}
