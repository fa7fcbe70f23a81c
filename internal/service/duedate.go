package service

import (
	"context"
	"time"

	"github.com/edunext/mindmap-api/internal/models"
	"github.com/edunext/mindmap-api/internal/repository"
)

// DueDateResolver computes the effective due date for a student on a block,
// folding in any individual extension. A nil due date means no deadline
// exists and the submission window never closes.
type DueDateResolver interface {
	EffectiveDueDate(ctx context.Context, block models.Block, studentID string) (*time.Time, error)
}

type extensionDueDateResolver struct {
	extensions repository.DueDateExtensionRepository
}

// NewDueDateResolver builds a resolver backed by the extension store.
func NewDueDateResolver(extensions repository.DueDateExtensionRepository) DueDateResolver {
	return &extensionDueDateResolver{extensions: extensions}
}

// EffectiveDueDate returns the later of the block due date and the student's
// extension. An extension never imposes a deadline on a block without one.
func (r *extensionDueDateResolver) EffectiveDueDate(ctx context.Context, block models.Block, studentID string) (*time.Time, error) {
	if block.DueDate == nil {
		return nil, nil
	}

	extended, err := r.extensions.Get(ctx, block.CourseID, block.BlockID, studentID)
	if err != nil {
		return nil, err
	}

	due := block.DueDate
	if extended != nil && extended.After(*due) {
		due = extended
	}

	return due, nil
}
