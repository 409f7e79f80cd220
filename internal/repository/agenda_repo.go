package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/course-agenda-api/internal/models"
)

// AgendaData is every LMS record the agenda of one user in one course needs.
type AgendaData struct {
	Sections     []models.CourseSection
	Modules      []models.CourseModule
	Availability []models.ModuleAvailability
	Completions  []models.ModuleCompletion
	Deliveries   []models.Delivery
	GradeItems   []models.GradeItem
	Grades       []models.GradeGrade
	Extensions   []models.Extension
	Contacts     []models.User
	Credits      *float64
}

// AgendaOptions selects the course-level records shown next to the agenda.
type AgendaOptions struct {
	// ContactRoles are the enrolment roles listed as course contacts.
	ContactRoles []string
	// CreditsField is the short name of the course custom field holding the
	// academic credits. Empty disables credits.
	CreditsField string
}

// AgendaRepository loads agenda source records. Each table is read once per
// call regardless of the number of modules.
type AgendaRepository interface {
	Load(ctx context.Context, courseID, userID uint) (AgendaData, error)
}

type agendaRepository struct {
	db      *gorm.DB
	options AgendaOptions
}

// NewAgendaRepository constructs the agenda repository.
func NewAgendaRepository(db *gorm.DB, options AgendaOptions) AgendaRepository {
	return &agendaRepository{db: db, options: options}
}

func (r *agendaRepository) Load(ctx context.Context, courseID, userID uint) (AgendaData, error) {
	db := r.db.WithContext(ctx)
	var data AgendaData

	if err := db.Where("course_id = ?", courseID).Order("section ASC").Find(&data.Sections).Error; err != nil {
		return AgendaData{}, fmt.Errorf("load sections: %w", err)
	}

	contacts, err := r.loadContacts(db, courseID)
	if err != nil {
		return AgendaData{}, err
	}
	data.Contacts = contacts

	credits, err := r.loadCredits(db, courseID)
	if err != nil {
		return AgendaData{}, err
	}
	data.Credits = credits

	if err := db.Where("course_id = ?", courseID).Order("section_number ASC, position ASC, id ASC").Find(&data.Modules).Error; err != nil {
		return AgendaData{}, fmt.Errorf("load modules: %w", err)
	}
	if len(data.Modules) == 0 {
		return data, nil
	}

	moduleIDs := make([]uint, 0, len(data.Modules))
	for _, module := range data.Modules {
		moduleIDs = append(moduleIDs, module.ID)
	}

	if err := db.Where("module_id IN ? AND user_id = ?", moduleIDs, userID).Find(&data.Availability).Error; err != nil {
		return AgendaData{}, fmt.Errorf("load availability: %w", err)
	}

	if err := db.Where("module_id IN ? AND user_id = ?", moduleIDs, userID).Find(&data.Completions).Error; err != nil {
		return AgendaData{}, fmt.Errorf("load completions: %w", err)
	}

	if err := db.Where("module_id IN ? AND user_id = ?", moduleIDs, userID).Order("submitted_at ASC").Find(&data.Deliveries).Error; err != nil {
		return AgendaData{}, fmt.Errorf("load deliveries: %w", err)
	}

	if err := db.Where("course_id = ? AND module_id IN ?", courseID, moduleIDs).Order("module_id ASC, item_number ASC").Find(&data.GradeItems).Error; err != nil {
		return AgendaData{}, fmt.Errorf("load grade items: %w", err)
	}

	if len(data.GradeItems) > 0 {
		itemIDs := make([]uint, 0, len(data.GradeItems))
		for _, item := range data.GradeItems {
			itemIDs = append(itemIDs, item.ID)
		}
		if err := db.Where("item_id IN ? AND user_id = ?", itemIDs, userID).Find(&data.Grades).Error; err != nil {
			return AgendaData{}, fmt.Errorf("load grades: %w", err)
		}
	}

	groups := db.Model(&models.GroupMember{}).
		Select("group_id").
		Where("course_id = ? AND user_id = ?", courseID, userID)

	if err := db.Where("module_id IN ?", moduleIDs).
		Where(db.Where("user_id = ?", userID).Or("group_id IN (?)", groups)).
		Find(&data.Extensions).Error; err != nil {
		return AgendaData{}, fmt.Errorf("load extensions: %w", err)
	}

	return data, nil
}

func (r *agendaRepository) loadContacts(db *gorm.DB, courseID uint) ([]models.User, error) {
	if len(r.options.ContactRoles) == 0 {
		return nil, nil
	}

	var users []models.User
	err := db.Model(&models.User{}).
		Select("DISTINCT users.id, users.first_name, users.last_name").
		Joins("JOIN enrolments ON enrolments.user_id = users.id").
		Where("enrolments.course_id = ? AND enrolments.role IN ?", courseID, r.options.ContactRoles).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("load course contacts: %w", err)
	}
	return users, nil
}

func (r *agendaRepository) loadCredits(db *gorm.DB, courseID uint) (*float64, error) {
	if r.options.CreditsField == "" {
		return nil, nil
	}

	var values []string
	err := db.Model(&models.CourseCustomFieldData{}).
		Joins("JOIN course_custom_fields ON course_custom_fields.id = course_custom_field_data.field_id").
		Where("course_custom_fields.short_name = ? AND course_custom_field_data.course_id = ?", r.options.CreditsField, courseID).
		Limit(1).
		Pluck("course_custom_field_data.value", &values).Error
	if err != nil {
		return nil, fmt.Errorf("load course credits: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return parseCredits(values[0]), nil
}

// parseCredits reads a custom field value as a number of credits. Empty or
// non-numeric values mean the course has no credits.
func parseCredits(raw string) *float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return nil
	}
	credits, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &credits
}
