package models

import "time"

// ModuleCompletion is the completion row of a module for a user.
type ModuleCompletion struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ModuleID        uint      `gorm:"not null;uniqueIndex:idx_completion_module_user" json:"module_id"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_completion_module_user" json:"user_id"`
	CompletionState int       `gorm:"not null" json:"completion_state"`
	TimeModified    time.Time `json:"time_modified"`
}

// Delivery is one piece of student work recorded by an activity: an
// assignment submission, a quiz attempt, a forum post, a glossary entry.
type Delivery struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ModuleID    uint      `gorm:"not null;index:idx_delivery_module_user" json:"module_id"`
	UserID      uint      `gorm:"not null;index:idx_delivery_module_user" json:"user_id"`
	Kind        string    `gorm:"size:32;not null" json:"kind"`
	Status      string    `gorm:"size:32" json:"status"`
	Score       *float64  `json:"score"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
}

// Extension moves the due date of a module for one user or one group.
type Extension struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	ModuleID uint      `gorm:"not null;index" json:"module_id"`
	UserID   *uint     `gorm:"index" json:"user_id"`
	GroupID  *uint     `gorm:"index" json:"group_id"`
	Until    time.Time `gorm:"not null" json:"until"`
}
