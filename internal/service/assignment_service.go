package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edunext/mindmap-api/internal/auth"
	"github.com/edunext/mindmap-api/internal/dto"
	"github.com/edunext/mindmap-api/internal/models"
	"github.com/edunext/mindmap-api/internal/repository"
)

// ErrSubmitNotAllowed indicates the submission window is closed or the
// assignment has already been graded.
var ErrSubmitNotAllowed = errors.New("submission not allowed")

// AssignmentService orchestrates the learner-facing save and submit flow and
// assembles the view context.
type AssignmentService interface {
	ViewContext(ctx context.Context, courseID, blockID string, identity auth.Identity) (dto.ViewContextResponse, error)
	Save(ctx context.Context, courseID, blockID string, identity auth.Identity, payload dto.SaveAssignmentRequest) error
	Submit(ctx context.Context, courseID, blockID string, identity auth.Identity, payload dto.SubmitAssignmentRequest) error
}

type assignmentService struct {
	blocks      repository.BlockRepository
	states      repository.StudentStateRepository
	submissions repository.SubmissionRepository
	dueDates    DueDateResolver
	cache       *GradingCache
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(
	blocks repository.BlockRepository,
	states repository.StudentStateRepository,
	submissions repository.SubmissionRepository,
	dueDates DueDateResolver,
	cache *GradingCache,
	validate *validator.Validate,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		blocks:      blocks,
		states:      states,
		submissions: submissions,
		dueDates:    dueDates,
		cache:       cache,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) ViewContext(ctx context.Context, courseID, blockID string, identity auth.Identity) (dto.ViewContextResponse, error) {
	block, err := s.getBlock(ctx, courseID, blockID)
	if err != nil {
		return dto.ViewContextResponse{}, err
	}

	state, err := s.states.GetOrCreate(ctx, courseID, blockID, identity.AnonymousID)
	if err != nil {
		return dto.ViewContextResponse{}, err
	}

	due, err := s.dueDates.EffectiveDueDate(ctx, block, identity.AnonymousID)
	if err != nil {
		return dto.ViewContextResponse{}, err
	}

	// Evaluated fresh on every render; never cached across requests.
	canSubmit := state.CanSubmit(block.PastDue(due, s.now()))

	inStudentView := identity.IsStudent() || identity.IsCourseTeam()
	editable := inStudentView && !block.IsStatic && canSubmit

	return dto.ViewContextResponse{
		DisplayName:         block.DisplayName,
		InStudentView:       inStudentView,
		Editable:            editable,
		IsStatic:            block.IsStatic,
		CanSubmitAssignment: canSubmit,
		SubmissionStatus:    string(state.Status),
		Score:               state.RawScore,
		MaxScore:            block.Points,
		MindMap:             currentMindMap(block, state),
		IsInstructor:        identity.IsCourseTeam(),
	}, nil
}

func (s *assignmentService) Save(ctx context.Context, courseID, blockID string, identity auth.Identity, payload dto.SaveAssignmentRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	if err := ValidateMindMapBody(payload.MindMap); err != nil {
		return err
	}

	if _, err := s.getBlock(ctx, courseID, blockID); err != nil {
		return err
	}

	state, err := s.states.GetOrCreate(ctx, courseID, blockID, identity.AnonymousID)
	if err != nil {
		return err
	}

	state.Body = datatypes.JSON(payload.MindMap)
	return s.states.Update(ctx, &state)
}

func (s *assignmentService) Submit(ctx context.Context, courseID, blockID string, identity auth.Identity, payload dto.SubmitAssignmentRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	if err := ValidateMindMapBody(payload.MindMap); err != nil {
		return err
	}

	block, err := s.getBlock(ctx, courseID, blockID)
	if err != nil {
		return err
	}

	state, err := s.states.GetOrCreate(ctx, courseID, blockID, identity.AnonymousID)
	if err != nil {
		return err
	}

	due, err := s.dueDates.EffectiveDueDate(ctx, block, identity.AnonymousID)
	if err != nil {
		return err
	}

	if !state.CanSubmit(block.PastDue(due, s.now())) {
		return ErrSubmitNotAllowed
	}

	submission := models.Submission{
		UUID:      uuid.NewString(),
		StudentID: identity.AnonymousID,
		CourseID:  courseID,
		ItemID:    blockID,
		ItemType:  models.ItemTypeMindMap,
	}
	if err := submission.SetAnswer(models.SubmissionAnswer{
		MindMapBody: string(payload.MindMap),
		Status:      models.StatusSubmitted,
	}); err != nil {
		return err
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return err
	}

	// The submission row and the state update are separate writes without a
	// cross-store transaction; a crash between them leaves the stores
	// inconsistent until the next submit.
	state.Body = datatypes.JSON(payload.MindMap)
	state.Status = models.StatusSubmitted
	if err := s.states.Update(ctx, &state); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, courseID, blockID)

	s.logger.Info().
		Str("course_id", courseID).
		Str("block_id", blockID).
		Str("submission_uuid", submission.UUID).
		Msg("assignment submitted")

	return nil
}

func (s *assignmentService) getBlock(ctx context.Context, courseID, blockID string) (models.Block, error) {
	block, err := s.blocks.GetByCourseAndBlock(ctx, courseID, blockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Block{}, ErrBlockNotFound
		}
		return models.Block{}, err
	}

	return block, nil
}

// currentMindMap resolves which body to render: the learner's own map when
// the block is not static, otherwise the instructor-authored map, falling
// back to the default tree.
func currentMindMap(block models.Block, state models.StudentState) json.RawMessage {
	if !block.IsStatic && len(state.Body) > 0 {
		return json.RawMessage(state.Body)
	}
	if len(block.Body) > 0 {
		return json.RawMessage(block.Body)
	}
	return json.RawMessage(models.DefaultMindMapBody())
}
