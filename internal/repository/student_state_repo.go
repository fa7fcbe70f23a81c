package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edunext/mindmap-api/internal/models"
)

// StudentStateRepository defines data operations for per-student block state.
type StudentStateRepository interface {
	GetOrCreate(ctx context.Context, courseID, blockID, studentID string) (models.StudentState, error)
	Update(ctx context.Context, state *models.StudentState) error
}

type studentStateRepository struct {
	db *gorm.DB
}

// NewStudentStateRepository instantiates the repository.
func NewStudentStateRepository(db *gorm.DB) StudentStateRepository {
	return &studentStateRepository{db: db}
}

func (r *studentStateRepository) GetOrCreate(ctx context.Context, courseID, blockID, studentID string) (models.StudentState, error) {
	state := models.StudentState{
		CourseID:  courseID,
		BlockID:   blockID,
		StudentID: studentID,
		Status:    models.StatusNotAttempted,
	}
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Where("block_id = ?", blockID).
		Where("student_id = ?", studentID).
		FirstOrCreate(&state).Error; err != nil {
		return models.StudentState{}, err
	}

	return state, nil
}

func (r *studentStateRepository) Update(ctx context.Context, state *models.StudentState) error {
	return r.db.WithContext(ctx).Save(state).Error
}
