package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/course-agenda-api/internal/models"
)

// CourseRepository provides access to courses and enrolments.
type CourseRepository interface {
	GetByID(ctx context.Context, id uint) (models.Course, error)
	GetEnrolment(ctx context.Context, courseID, userID uint) (models.Enrolment, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs a course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return models.Course{}, err
	}

	return course, nil
}

func (r *courseRepository) GetEnrolment(ctx context.Context, courseID, userID uint) (models.Enrolment, error) {
	var enrolment models.Enrolment
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Order("id ASC").
		First(&enrolment).Error
	if err != nil {
		return models.Enrolment{}, err
	}

	return enrolment, nil
}
