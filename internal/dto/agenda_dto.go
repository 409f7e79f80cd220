package dto

import "time"

// AgendaQuery carries the optional query parameters of the agenda endpoints.
type AgendaQuery struct {
	UserID uint   `query:"user_id" validate:"omitempty,gt=0"`
	Lang   string `query:"lang" validate:"omitempty,oneof=en es"`
}

// AlertQuery selects the student whose alerts should be dispatched.
type AlertQuery struct {
	UserID uint `query:"user_id" validate:"required,gt=0"`
}

// AgendaResponse is the agenda of one student in one course.
type AgendaResponse struct {
	CourseID      uint             `json:"course_id"`
	CourseName    string           `json:"course_name"`
	UserID        uint             `json:"user_id"`
	Lang          string           `json:"lang"`
	GeneratedAt   time.Time        `json:"generated_at"`
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date"`
	Duration      string           `json:"duration"`
	Teachers      []string         `json:"teachers"`
	Credits       *float64         `json:"credits"`
	Hours         *float64         `json:"hours"`
	StudyTime     string           `json:"study_time,omitempty"`
	Progress      *float64         `json:"progress"`
	ProgressColor string           `json:"progress_color,omitempty"`
	Summary       map[string]int   `json:"summary"`
	Sections      []AgendaSection  `json:"sections"`
	Legend        []AgendaStateKey `json:"legend"`
}

// AgendaStateKey describes how one state is displayed.
type AgendaStateKey struct {
	State string `json:"state"`
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// AgendaSection groups the activities of one course section.
type AgendaSection struct {
	Number       int              `json:"number"`
	Name         string           `json:"name"`
	Restrictions string           `json:"restrictions,omitempty"`
	Activities   []AgendaActivity `json:"activities"`
}

// AgendaActivity is the evaluated agenda entry of one activity.
type AgendaActivity struct {
	ID                   uint             `json:"id"`
	Type                 string           `json:"type"`
	Name                 string           `json:"name"`
	Visible              bool             `json:"visible"`
	State                string           `json:"state"`
	FullStateLabel       string           `json:"full_state_label"`
	ShortStateLabel      string           `json:"short_state_label"`
	InfoDateLabel        string           `json:"info_date_label"`
	Color                string           `json:"color"`
	Icon                 string           `json:"icon"`
	WeighingPercent      string           `json:"weighing_percent"`
	Grades               []AgendaGrade    `json:"grades"`
	Delivered            bool             `json:"delivered"`
	DeliveredAt          *time.Time       `json:"delivered_at"`
	CompletedAt          *time.Time       `json:"completed_at"`
	RequiresFeedback     bool             `json:"requires_feedback"`
	DueSoon              bool             `json:"due_soon"`
	GradingOverdue       bool             `json:"grading_overdue"`
	DaysRemaining        *int             `json:"days_remaining"`
	Restrictions         string           `json:"restrictions,omitempty"`
	CompletionConditions []string         `json:"completion_conditions"`
	Window               AgendaWindow     `json:"window"`
	Extension            *AgendaExtension `json:"extension,omitempty"`
}

// AgendaGrade is one visible grade dimension of an activity.
type AgendaGrade struct {
	ItemID   uint     `json:"item_id"`
	Name     string   `json:"name"`
	Visible  bool     `json:"visible"`
	Grade    string   `json:"grade"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Passed   *bool    `json:"passed"`
	Weighing string   `json:"weighing"`
	Value    *float64 `json:"value,omitempty"`
}

// AgendaWindow exposes the resolved availability window. Nil means unset.
type AgendaWindow struct {
	From          *time.Time `json:"from"`
	Until         *time.Time `json:"until"`
	OriginalUntil *time.Time `json:"original_until"`
	CloseCutoff   *time.Time `json:"close_cutoff"`
}

// AgendaExtension describes an extended due date.
type AgendaExtension struct {
	Until time.Time `json:"until"`
	Label string    `json:"label"`
}

// ProgressResponse is the course completion progress of a student.
type ProgressResponse struct {
	CourseID  uint     `json:"course_id"`
	UserID    uint     `json:"user_id"`
	Available bool     `json:"available"`
	Progress  *float64 `json:"progress"`
	Color     string   `json:"color,omitempty"`
}

// AgendaAlert is an event published when an activity needs attention.
type AgendaAlert struct {
	ID           string     `json:"id"`
	Kind         string     `json:"kind"`
	CourseID     uint       `json:"course_id"`
	UserID       uint       `json:"user_id"`
	ActivityID   uint       `json:"activity_id"`
	ActivityName string     `json:"activity_name"`
	ActivityType string     `json:"activity_type"`
	State        string     `json:"state"`
	DueAt        *time.Time `json:"due_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AlertDispatchResponse summarises one alert dispatch run.
type AlertDispatchResponse struct {
	CourseID  uint          `json:"course_id"`
	UserID    uint          `json:"user_id"`
	Published []AgendaAlert `json:"published"`
	Skipped   int           `json:"skipped"`
}
