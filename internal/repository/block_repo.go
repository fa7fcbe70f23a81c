package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edunext/mindmap-api/internal/models"
)

// BlockRepository defines data operations for block configuration.
type BlockRepository interface {
	GetByCourseAndBlock(ctx context.Context, courseID, blockID string) (models.Block, error)
	Upsert(ctx context.Context, block *models.Block) error
}

type blockRepository struct {
	db *gorm.DB
}

// NewBlockRepository instantiates the repository.
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) GetByCourseAndBlock(ctx context.Context, courseID, blockID string) (models.Block, error) {
	var block models.Block
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Where("block_id = ?", blockID).
		First(&block).Error; err != nil {
		return models.Block{}, err
	}

	return block, nil
}

func (r *blockRepository) Upsert(ctx context.Context, block *models.Block) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_id"}, {Name: "block_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "is_static", "has_score", "points", "weight",
			"due_date", "grace_period_seconds", "body", "updated_at",
		}),
	}).Create(block).Error
}
