package agenda

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// EvaluationInput gathers everything the state machine needs for one activity.
type EvaluationInput struct {
	Activity    Activity
	Window      Window
	Completion  *CompletionMarker
	DeliveredAt time.Time
	Records     []DeliveryRecord
	Grades      GradeSummary
	Course      Course
	Settings    Settings
	Now         time.Time
}

// Evaluation is the outcome of the state machine for one activity.
type Evaluation struct {
	State            State
	RequiresFeedback bool
	Delivered        bool
	DeliveredAt      time.Time
	DaysRemaining    int
	HasDeadline      bool
	DueSoon          bool
	GradingOverdue   bool
}

// Evaluate derives the agenda state of one activity. It is a pure function of
// its input.
func Evaluate(in EvaluationInput) Evaluation {
	activity := in.Activity
	now := in.Now
	delivered := !in.DeliveredAt.IsZero()

	state := StatePending
	if !activity.CompletionTracking {
		state = StateActive
	}

	if !activity.Available || (!in.Window.From.IsZero() && in.Window.From.After(now)) {
		state = StateBlocked
	}

	if activity.CompletionTracking && in.Completion != nil {
		if recorded, final := completionState(*in.Completion); final || state != StateBlocked {
			state = recorded
		}
	}

	requiresFeedback := false
	if in.Grades.HasItems {
		if in.Grades.RequiresGrade {
			requiresFeedback = RequiresFeedbackGrade(activity, in.Records)
			if delivered {
				if requiresFeedback {
					state = StateDelivered
				} else {
					state = StateCompleted
				}
			}
		} else {
			switch in.Grades.Verdict {
			case VerdictPass:
				state = StateApproved
			case VerdictFail:
				state = StateFailed
			default:
				if delivered {
					state = StateCompleted
				}
			}
		}
	}

	if (state == StatePending || state == StateActive) &&
		IsDeliverable(activity.Type) &&
		!delivered &&
		!in.Grades.Graded &&
		!in.Window.Until.IsZero() && now.After(in.Window.Until) {
		if !in.Window.CloseCutoff.IsZero() && in.Window.CloseCutoff.After(now) {
			state = StateRetarded
		} else {
			state = StateUndelivered
		}
	}

	days, hasDeadline := DaysRemaining(in.Window, in.Course, now)

	evaluation := Evaluation{
		State:            state,
		RequiresFeedback: requiresFeedback,
		Delivered:        delivered,
		DeliveredAt:      in.DeliveredAt,
		DaysRemaining:    days,
		HasDeadline:      hasDeadline,
	}

	warn := in.Settings.DaysToWarn
	if left, ok := evaluation.Countdown(); ok && warn > 0 && left <= warn {
		evaluation.DueSoon = true
	}

	grace := in.Settings.DaysToGrade
	if state == StateDelivered && grace > 0 && now.Sub(in.DeliveredAt) > time.Duration(grace)*day {
		evaluation.GradingOverdue = true
	}

	return evaluation
}

// DaysRemaining returns the rounded number of days until the effective due
// date: the window's until, else the course end. It reports false when neither
// is set.
func DaysRemaining(window Window, course Course, now time.Time) (int, bool) {
	until := window.Until
	if until.IsZero() {
		until = course.EndDate
	}
	if until.IsZero() {
		return 0, false
	}
	return int(math.Round(until.Sub(now).Hours() / 24)), true
}

// Countdown returns the days left shown for a pending activity. A pending
// activity already past its due date has no countdown.
func (e Evaluation) Countdown() (int, bool) {
	if e.State != StatePending || !e.HasDeadline || e.DaysRemaining < 0 {
		return 0, false
	}
	return e.DaysRemaining, true
}

// completionState maps a completion marker to a state. final is false for
// markers that do not record an outcome, which leave a blocked activity blocked.
func completionState(marker CompletionMarker) (state State, final bool) {
	switch marker {
	case CompletionComplete:
		return StateCompleted, true
	case CompletionCompletePass:
		return StateApproved, true
	case CompletionCompleteFail, CompletionCompleteFailHidden:
		return StateFailed, true
	default:
		return StatePending, false
	}
}
