package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edunext/mindmap-api/internal/models"
)

// ScoreRepository defines data operations for weighted scores. Deleting a
// score fully clears prior score state rather than writing a zero.
type ScoreRepository interface {
	Get(ctx context.Context, item models.StudentItem) (models.Score, error)
	Set(ctx context.Context, score *models.Score) error
	Delete(ctx context.Context, item models.StudentItem) error
}

type scoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository instantiates the repository.
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Get(ctx context.Context, item models.StudentItem) (models.Score, error) {
	var score models.Score
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", item.StudentID).
		Where("course_id = ?", item.CourseID).
		Where("item_id = ?", item.ItemID).
		First(&score).Error; err != nil {
		return models.Score{}, err
	}

	return score, nil
}

func (r *scoreRepository) Set(ctx context.Context, score *models.Score) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "course_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"points_earned", "points_possible", "updated_at",
		}),
	}).Create(score).Error
}

func (r *scoreRepository) Delete(ctx context.Context, item models.StudentItem) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", item.StudentID).
		Where("course_id = ?", item.CourseID).
		Where("item_id = ?", item.ItemID).
		Delete(&models.Score{}).Error
}
