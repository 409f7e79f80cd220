package models

import "strings"

// User is the LMS account row. The agenda only reads display names.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
}

// FullName joins the first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// CourseCustomField is a course-level custom field definition.
type CourseCustomField struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ShortName string `gorm:"size:100;uniqueIndex" json:"short_name"`
	Name      string `gorm:"size:255" json:"name"`
}

// TableName overrides the default table name.
func (CourseCustomField) TableName() string {
	return "course_custom_fields"
}

// CourseCustomFieldData holds the value of a custom field for one course.
type CourseCustomFieldData struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FieldID  uint   `gorm:"not null;uniqueIndex:idx_custom_field_course" json:"field_id"`
	CourseID uint   `gorm:"not null;uniqueIndex:idx_custom_field_course" json:"course_id"`
	Value    string `gorm:"type:text" json:"value"`
}

// TableName overrides the default table name.
func (CourseCustomFieldData) TableName() string {
	return "course_custom_field_data"
}
