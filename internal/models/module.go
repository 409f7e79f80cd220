package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Completion tracking modes of a course module.
const (
	CompletionTrackingNone      = 0
	CompletionTrackingManual    = 1
	CompletionTrackingAutomatic = 2
)

// CourseModule is an activity instance placed in a course section. Config
// holds the type-specific settings (due dates, cutoffs, grading flags).
type CourseModule struct {
	ID                   uint              `gorm:"primaryKey" json:"id"`
	CourseID             uint              `gorm:"not null;index" json:"course_id"`
	SectionNumber        int               `gorm:"not null;index" json:"section_number"`
	Position             int               `json:"position"`
	ModuleName           string            `gorm:"size:64;not null" json:"module_name"`
	Name                 string            `gorm:"size:255;not null" json:"name"`
	Visible              bool              `json:"visible"`
	AvailableFrom        *time.Time        `json:"available_from"`
	Completion           int               `json:"completion"`
	Config               datatypes.JSONMap `gorm:"type:json" json:"config"`
	ConditionsRaw        string            `gorm:"column:completion_conditions;type:text" json:"-"`
	CompletionConditions []string          `gorm:"-" json:"completion_conditions"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// BeforeSave serialises the completion conditions.
func (m *CourseModule) BeforeSave(tx *gorm.DB) error {
	m.ConditionsRaw = encodeLines(m.CompletionConditions)
	m.ModuleName = strings.ToLower(strings.TrimSpace(m.ModuleName))
	return nil
}

// AfterFind hydrates the completion conditions.
func (m *CourseModule) AfterFind(tx *gorm.DB) error {
	m.CompletionConditions = decodeLines(m.ConditionsRaw)
	return nil
}

// ModuleAvailability is the per-user outcome of the LMS access restrictions
// of a module. A missing row means the module is available.
type ModuleAvailability struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ModuleID  uint   `gorm:"not null;index:idx_availability_module_user" json:"module_id"`
	UserID    uint   `gorm:"not null;index:idx_availability_module_user" json:"user_id"`
	Available bool   `json:"available"`
	InfoHTML  string `gorm:"type:text" json:"info_html"`
}

func encodeLines(lines []string) string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, "\n")
}

func decodeLines(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, "\n")
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
