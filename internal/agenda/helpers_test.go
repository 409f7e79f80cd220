package agenda

import (
	"strings"
	"time"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type stubLocale struct{}

var stubTexts = map[string]string{
	"infodate_available_from":    "available from {0}",
	"infodate_available_until":   "available until {0}",
	"infodate_available_on":      "available on {0}",
	"infodate_available_between": "available between {0} and {1}",
	"infodate_delivered_from":    "delivered from {0}",
	"infodate_delivered_until":   "delivered until {0}",
	"infodate_delivered_on":      "delivered on {0}",
	"infodate_delivered_between": "delivered between {0} and {1}",
	"infodate_expired_from":      "expired from {0}",
	"infodate_expired_until":     "expired until {0}",
	"infodate_expired_on":        "expired on {0}",
	"infodate_expired_between":   "expired between {0} and {1}",
	"timehoursrange":             "from {0} to {1}",
	"fullstate_pendingdays":      "{0} days left",
	"fullstate_retarded":         "late {0} days",
	"fullstate_retardedactive":   "late but available until {0}",
}

func (stubLocale) Location() *time.Location { return time.UTC }

func (stubLocale) FormatDate(t time.Time) string { return t.UTC().Format("2006-01-02") }

func (stubLocale) FormatTime(t time.Time) string { return t.UTC().Format("15:04") }

func (stubLocale) FormatDateTime(t time.Time) string { return t.UTC().Format("2006-01-02 15:04") }

func (stubLocale) Text(key string, params ...string) string {
	text, ok := stubTexts[key]
	if !ok {
		text = key
	}
	for i, param := range params {
		text = strings.ReplaceAll(text, "{"+string(rune('0'+i))+"}", param)
	}
	return text
}

func unix(t time.Time) int64 {
	return t.Unix()
}

func floatPointer(v float64) *float64 {
	return &v
}

func markerPointer(m CompletionMarker) *CompletionMarker {
	return &m
}

func assignment(cfg RawConfig) Activity {
	return Activity{
		ID:                 1,
		Type:               TypeAssign,
		Name:               "Essay",
		Section:            1,
		Visible:            true,
		Available:          true,
		CompletionTracking: true,
		Config:             cfg,
	}
}
