package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edunext/mindmap-api/internal/auth"
	"github.com/edunext/mindmap-api/internal/dto"
	"github.com/edunext/mindmap-api/internal/models"
	"github.com/edunext/mindmap-api/internal/repository"
)

// ErrNotCourseTeam indicates a grading or editing action was attempted by a
// caller without course-team rights.
var ErrNotCourseTeam = errors.New("course team role required")

// ErrBlockNotFound indicates the block has not been configured yet.
var ErrBlockNotFound = errors.New("block not found")

// ErrDisplayNameEmpty indicates the display name was empty after sanitization.
var ErrDisplayNameEmpty = errors.New("display name empty after sanitization")

// BlockService manages instructor-facing block configuration.
type BlockService interface {
	StudioSubmit(ctx context.Context, courseID, blockID string, identity auth.Identity, payload dto.StudioSubmitRequest) (dto.BlockResponse, error)
	Get(ctx context.Context, courseID, blockID string) (models.Block, error)
}

type blockService struct {
	blocks    repository.BlockRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewBlockService constructs the block configuration service.
func NewBlockService(blocks repository.BlockRepository, validate *validator.Validate, logger zerolog.Logger) BlockService {
	return &blockService{
		blocks:    blocks,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "block_service").Logger(),
	}
}

func (s *blockService) StudioSubmit(ctx context.Context, courseID, blockID string, identity auth.Identity, payload dto.StudioSubmitRequest) (dto.BlockResponse, error) {
	if !identity.IsCourseTeam() {
		return dto.BlockResponse{}, ErrNotCourseTeam
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.BlockResponse{}, err
	}

	displayName := strings.TrimSpace(s.sanitizer.Sanitize(payload.DisplayName))
	if displayName == "" {
		return dto.BlockResponse{}, ErrDisplayNameEmpty
	}

	if len(payload.MindMap) > 0 {
		if err := ValidateMindMapBody(payload.MindMap); err != nil {
			return dto.BlockResponse{}, err
		}
	}

	block, err := s.blocks.GetByCourseAndBlock(ctx, courseID, blockID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BlockResponse{}, err
		}
		block = models.Block{
			CourseID: courseID,
			BlockID:  blockID,
			HasScore: true,
			Points:   models.DefaultPoints,
			Body:     models.DefaultMindMapBody(),
		}
	}

	block.DisplayName = displayName
	block.IsStatic = payload.IsStatic
	block.HasScore = payload.HasScore
	if len(payload.MindMap) > 0 {
		block.Body = datatypes.JSON(payload.MindMap)
	}
	if payload.Points != nil {
		block.Points = *payload.Points
	}
	if payload.Weight != nil {
		block.Weight = *payload.Weight
	}
	block.DueDate = payload.DueDate
	block.GracePeriodSeconds = payload.GracePeriodSeconds

	if err := s.blocks.Upsert(ctx, &block); err != nil {
		return dto.BlockResponse{}, err
	}

	s.logger.Info().
		Str("course_id", courseID).
		Str("block_id", blockID).
		Msg("block configuration saved")

	return dto.NewBlockResponse(block), nil
}

func (s *blockService) Get(ctx context.Context, courseID, blockID string) (models.Block, error) {
	block, err := s.blocks.GetByCourseAndBlock(ctx, courseID, blockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Block{}, ErrBlockNotFound
		}
		return models.Block{}, err
	}

	return block, nil
}
