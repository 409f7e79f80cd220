package agenda

import "time"

// Delivery record kinds as produced by the LMS adapter.
const (
	KindSubmission = "submission"
	KindAnswer     = "answer"
	KindEntry      = "entry"
	KindResponse   = "response"
	KindPost       = "post"
	KindAttempt    = "attempt"
	KindPage       = "page"
)

// DeliveryRecord is one piece of student work for an activity.
type DeliveryRecord struct {
	ActivityID int64
	Kind       string
	Status     string
	At         time.Time
	Score      *float64
}

// DetectDelivery returns when the student last delivered activity, or the zero
// time when nothing qualifies.
func DetectDelivery(activity Activity, records []DeliveryRecord) time.Time {
	return Lookup(activity.Type).DetectDelivery(activity.Config, records)
}

// RequiresFeedbackGrade reports whether a delivery of activity waits on a
// teacher's grade rather than an automatic one.
func RequiresFeedbackGrade(activity Activity, records []DeliveryRecord) bool {
	return Lookup(activity.Type).RequiresFeedbackGrade(activity.Config, records)
}
