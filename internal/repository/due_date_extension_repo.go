package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/edunext/mindmap-api/internal/models"
)

// DueDateExtensionRepository looks up per-student due-date extensions.
type DueDateExtensionRepository interface {
	Get(ctx context.Context, courseID, blockID, studentID string) (*time.Time, error)
	Upsert(ctx context.Context, extension *models.DueDateExtension) error
}

type dueDateExtensionRepository struct {
	db *gorm.DB
}

// NewDueDateExtensionRepository instantiates the repository.
func NewDueDateExtensionRepository(db *gorm.DB) DueDateExtensionRepository {
	return &dueDateExtensionRepository{db: db}
}

// Get returns the extended due date for a student, or nil when none exists.
func (r *dueDateExtensionRepository) Get(ctx context.Context, courseID, blockID, studentID string) (*time.Time, error) {
	var extension models.DueDateExtension
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Where("block_id = ?", blockID).
		Where("student_id = ?", studentID).
		First(&extension).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &extension.Due, nil
}

func (r *dueDateExtensionRepository) Upsert(ctx context.Context, extension *models.DueDateExtension) error {
	return r.db.WithContext(ctx).Save(extension).Error
}
