package agenda

import "time"

// ResolveWindow computes the availability window of activity at now.
// Extensions only widen a due date that already exists.
func ResolveWindow(activity Activity, extensions []time.Time, now time.Time) Window {
	if !activity.AvailableFrom.IsZero() && activity.AvailableFrom.After(now) {
		return Window{From: activity.AvailableFrom}
	}

	window := Lookup(activity.Type).ResolveWindow(activity.Config)
	window.Until = applyExtensions(window.OriginalUntil, extensions)

	if !window.CloseCutoff.IsZero() && !window.CloseCutoff.After(now) {
		window.CloseCutoff = time.Time{}
	}

	return window
}

func applyExtensions(until time.Time, extensions []time.Time) time.Time {
	if until.IsZero() {
		return until
	}

	effective := until
	for _, extension := range extensions {
		if extension.After(effective) {
			effective = extension
		}
	}
	return effective
}
