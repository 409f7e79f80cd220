package models

import "time"

// GradeItem is a grade book column attached to a module.
type GradeItem struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CourseID    uint       `gorm:"not null;index" json:"course_id"`
	ModuleID    uint       `gorm:"not null;index" json:"module_id"`
	ItemNumber  int        `json:"item_number"`
	Name        string     `gorm:"size:255" json:"name"`
	Hidden      bool       `json:"hidden"`
	HiddenUntil *time.Time `json:"hidden_until"`
	GradePass   float64    `json:"grade_pass"`
	GradeMin    float64    `json:"grade_min"`
	GradeMax    float64    `gorm:"default:100" json:"grade_max"`
}

// GradeGrade is the grade of one user in one grade item, with the weight the
// course aggregation gave it.
type GradeGrade struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ItemID            uint      `gorm:"not null;uniqueIndex:idx_grade_item_user" json:"item_id"`
	UserID            uint      `gorm:"not null;uniqueIndex:idx_grade_item_user" json:"user_id"`
	FinalGrade        *float64  `json:"final_grade"`
	Hidden            bool      `json:"hidden"`
	Excluded          bool      `json:"excluded"`
	AggregationWeight float64   `json:"aggregation_weight"`
	AggregationStatus string    `gorm:"size:16" json:"aggregation_status"`
	UpdatedAt         time.Time `json:"updated_at"`
}
