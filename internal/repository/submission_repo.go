package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edunext/mindmap-api/internal/models"
)

// SubmissionRepository defines data operations for submission records.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByUUID(ctx context.Context, uuid string) (models.Submission, error)
	ListByStudentItem(ctx context.Context, item models.StudentItem) ([]models.Submission, error)
	ListStudentIDs(ctx context.Context, courseID, itemID string) ([]string, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) GetByUUID(ctx context.Context, uuid string) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).
		Where("uuid = ?", uuid).
		First(&submission).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

// ListByStudentItem returns the student's submissions most recent first.
func (r *submissionRepository) ListByStudentItem(ctx context.Context, item models.StudentItem) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", item.StudentID).
		Where("course_id = ?", item.CourseID).
		Where("item_id = ?", item.ItemID).
		Where("item_type = ?", item.ItemType).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) ListStudentIDs(ctx context.Context, courseID, itemID string) ([]string, error) {
	var studentIDs []string
	if err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Distinct("student_id").
		Where("course_id = ?", courseID).
		Where("item_id = ?", itemID).
		Where("item_type = ?", models.ItemTypeMindMap).
		Order("student_id").
		Pluck("student_id", &studentIDs).Error; err != nil {
		return nil, err
	}

	return studentIDs, nil
}
