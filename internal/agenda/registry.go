package agenda

import "time"

// Strategy holds everything the engine knows about one activity type.
type Strategy interface {
	// ResolveWindow maps the type-specific configuration to window dates.
	ResolveWindow(cfg RawConfig) Window
	// Deliverable reports whether the type takes part in delivery semantics.
	Deliverable() bool
	// DetectDelivery returns the latest qualifying delivery time, or zero.
	DetectDelivery(cfg RawConfig, records []DeliveryRecord) time.Time
	// RequiresFeedbackGrade reports whether a teacher must grade a delivery.
	RequiresFeedbackGrade(cfg RawConfig, records []DeliveryRecord) bool
}

type deliveryRule func(cfg RawConfig, record DeliveryRecord) bool

type feedbackRule func(cfg RawConfig, records []DeliveryRecord) bool

type typeStrategy struct {
	fromKey     string
	untilKey    string
	cutoffKey   string
	deliverable bool
	delivered   deliveryRule
	feedback    feedbackRule
}

func (s typeStrategy) ResolveWindow(cfg RawConfig) Window {
	var window Window
	if s.fromKey != "" {
		window.From = cfg.Timestamp(s.fromKey)
	}
	if s.untilKey != "" {
		window.Until = cfg.Timestamp(s.untilKey)
	}
	if s.cutoffKey != "" {
		window.CloseCutoff = cfg.Timestamp(s.cutoffKey)
	}
	window.OriginalUntil = window.Until
	return window
}

func (s typeStrategy) Deliverable() bool {
	return s.deliverable
}

func (s typeStrategy) DetectDelivery(cfg RawConfig, records []DeliveryRecord) time.Time {
	if !s.deliverable || s.delivered == nil {
		return time.Time{}
	}

	var latest time.Time
	for _, record := range records {
		if record.At.IsZero() || !s.delivered(cfg, record) {
			continue
		}
		if record.At.After(latest) {
			latest = record.At
		}
	}
	return latest
}

func (s typeStrategy) RequiresFeedbackGrade(cfg RawConfig, records []DeliveryRecord) bool {
	if s.feedback == nil {
		return false
	}
	return s.feedback(cfg, records)
}

var neutralStrategy Strategy = typeStrategy{}

var registry = map[ActivityType]Strategy{
	TypeAssign: typeStrategy{
		fromKey:     "allowsubmissionsfromdate",
		untilKey:    "duedate",
		cutoffKey:   "cutoffdate",
		deliverable: true,
		delivered:   assignSubmitted,
		feedback:    always,
	},
	TypeChoice: typeStrategy{
		deliverable: true,
		delivered:   kindIs(KindAnswer),
	},
	TypeData: typeStrategy{
		fromKey:     "timeavailablefrom",
		untilKey:    "timeavailableto",
		deliverable: true,
		delivered:   kindIs(KindEntry),
		feedback:    configFlag("approval"),
	},
	TypeFeedback: typeStrategy{
		fromKey:     "timeopen",
		untilKey:    "timeclose",
		deliverable: true,
		delivered:   kindWithStatus(KindResponse, "completed"),
	},
	TypeForum: typeStrategy{
		untilKey:    "duedate",
		deliverable: true,
		delivered:   kindIs(KindPost),
		feedback:    configFlag("advancedgrading"),
	},
	TypeGlossary: typeStrategy{
		deliverable: true,
		delivered:   kindIs(KindEntry),
	},
	TypeH5P: typeStrategy{
		deliverable: true,
		delivered:   kindIs(KindAttempt),
	},
	TypeLesson: typeStrategy{
		fromKey:     "available",
		untilKey:    "deadline",
		deliverable: true,
		delivered:   kindWithStatus(KindAttempt, "completed"),
		feedback:    configFlag("advancedgrading"),
	},
	TypeQuiz: typeStrategy{
		fromKey:     "timeopen",
		untilKey:    "timeclose",
		deliverable: true,
		delivered:   kindWithStatus(KindAttempt, "finished"),
		feedback:    quizAttemptUnscored,
	},
	TypeScorm: typeStrategy{
		fromKey:  "timeopen",
		untilKey: "timeclose",
	},
	TypeSurvey: typeStrategy{
		deliverable: true,
		delivered:   kindIs(KindAnswer),
	},
	TypeWiki: typeStrategy{
		deliverable: true,
		delivered:   kindIs(KindPage),
	},
	TypeWorkshop: typeStrategy{
		fromKey:     "submissionstart",
		untilKey:    "submissionend",
		deliverable: true,
		delivered:   kindIs(KindSubmission),
		feedback:    configFlag("advancedgrading"),
	},
}

// Lookup returns the strategy of t, or a neutral strategy for unknown types.
func Lookup(t ActivityType) Strategy {
	if strategy, ok := registry[t]; ok {
		return strategy
	}
	return neutralStrategy
}

// IsDeliverable reports whether t belongs to the deliverable activity types.
func IsDeliverable(t ActivityType) bool {
	return Lookup(t).Deliverable()
}

func assignSubmitted(cfg RawConfig, record DeliveryRecord) bool {
	if record.Kind != KindSubmission {
		return false
	}
	if record.Status == "submitted" {
		return true
	}
	// Without a submit step a draft is the final submission.
	drafts, set := cfg.Int("submissiondrafts")
	return record.Status == "draft" && set && drafts == 0
}

func quizAttemptUnscored(_ RawConfig, records []DeliveryRecord) bool {
	for _, record := range records {
		if record.Kind == KindAttempt && record.Status == "finished" && record.Score == nil {
			return true
		}
	}
	return false
}

func always(RawConfig, []DeliveryRecord) bool {
	return true
}

func configFlag(key string) feedbackRule {
	return func(cfg RawConfig, _ []DeliveryRecord) bool {
		return cfg.Flag(key)
	}
}

func kindIs(kind string) deliveryRule {
	return func(_ RawConfig, record DeliveryRecord) bool {
		return record.Kind == kind
	}
}

func kindWithStatus(kind, status string) deliveryRule {
	return func(_ RawConfig, record DeliveryRecord) bool {
		return record.Kind == kind && record.Status == status
	}
}
