package models

import "time"

// Course mirrors the LMS course row with the dates the agenda needs.
type Course struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	FullName         string     `gorm:"size:255;not null" json:"full_name"`
	ShortName        string     `gorm:"size:100;index" json:"short_name"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	EnableCompletion bool       `json:"enable_completion"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CourseSection is one numbered section of a course.
type CourseSection struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	CourseID         uint   `gorm:"not null;uniqueIndex:idx_course_section" json:"course_id"`
	Section          int    `gorm:"not null;uniqueIndex:idx_course_section" json:"section"`
	Name             string `gorm:"size:255" json:"name"`
	Visible          bool   `json:"visible"`
	AvailabilityHTML string `gorm:"type:text" json:"availability_html"`
}

// Enrolment roles.
const (
	EnrolmentRoleStudent        = "student"
	EnrolmentRoleTeacher        = "teacher"
	EnrolmentRoleEditingTeacher = "editingteacher"
)

// Enrolment links a user to a course with a role.
type Enrolment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;index:idx_enrolment_course_user" json:"course_id"`
	UserID    uint      `gorm:"not null;index:idx_enrolment_course_user" json:"user_id"`
	Role      string    `gorm:"size:32;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Gradable reports whether the enrolment carries a role that receives grades.
func (e Enrolment) Gradable() bool {
	return e.Role == EnrolmentRoleStudent
}

// GroupMember places a user in a course group.
type GroupMember struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	CourseID uint `gorm:"not null;index" json:"course_id"`
	GroupID  uint `gorm:"not null;index" json:"group_id"`
	UserID   uint `gorm:"not null;index" json:"user_id"`
}

// AgendaTables lists the models the agenda reads, in migration order.
func AgendaTables() []interface{} {
	return []interface{}{
		&Course{},
		&CourseSection{},
		&Enrolment{},
		&GroupMember{},
		&CourseModule{},
		&ModuleAvailability{},
		&ModuleCompletion{},
		&Delivery{},
		&Extension{},
		&GradeItem{},
		&GradeGrade{},
		&User{},
		&CourseCustomField{},
		&CourseCustomFieldData{},
	}
}
