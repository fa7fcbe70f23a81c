package dto

import (
	"encoding/json"
	"time"

	"github.com/edunext/mindmap-api/internal/models"
)

// StudioSubmitRequest carries the instructor edit form for a block.
type StudioSubmitRequest struct {
	DisplayName        string          `json:"display_name" validate:"required,max=255"`
	IsStatic           bool            `json:"is_static"`
	HasScore           bool            `json:"has_score"`
	MindMap            json.RawMessage `json:"mind_map"`
	Points             *int            `json:"points" validate:"omitempty,gte=0"`
	Weight             *float64        `json:"weight" validate:"omitempty,gte=0"`
	DueDate            *time.Time      `json:"due_date"`
	GracePeriodSeconds *int64          `json:"grace_period_seconds" validate:"omitempty,gte=0"`
}

// BlockResponse is returned after studio edits.
type BlockResponse struct {
	CourseID           string          `json:"course_id"`
	BlockID            string          `json:"block_id"`
	DisplayName        string          `json:"display_name"`
	IsStatic           bool            `json:"is_static"`
	HasScore           bool            `json:"has_score"`
	Points             int             `json:"points"`
	Weight             float64         `json:"weight"`
	DueDate            *time.Time      `json:"due_date"`
	GracePeriodSeconds *int64          `json:"grace_period_seconds"`
	Body               json.RawMessage `json:"body"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewBlockResponse converts a Block model into a DTO.
func NewBlockResponse(model models.Block) BlockResponse {
	return BlockResponse{
		CourseID:           model.CourseID,
		BlockID:            model.BlockID,
		DisplayName:        model.DisplayName,
		IsStatic:           model.IsStatic,
		HasScore:           model.HasScore,
		Points:             model.Points,
		Weight:             model.Weight,
		DueDate:            model.DueDate,
		GracePeriodSeconds: model.GracePeriodSeconds,
		Body:               json.RawMessage(model.Body),
		UpdatedAt:          model.UpdatedAt,
	}
}
