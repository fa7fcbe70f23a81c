package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/edunext/mindmap-api/internal/auth"
	"github.com/edunext/mindmap-api/internal/dto"
	"github.com/edunext/mindmap-api/internal/models"
	"github.com/edunext/mindmap-api/internal/repository"
)

// ErrSubmissionNotFound indicates the submission was not located.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrScoreExceedsMax indicates a grading score surpasses the block maximum.
var ErrScoreExceedsMax = errors.New("score exceeds block max score")

// GradingService encapsulates the instructor grading workflows.
type GradingService interface {
	GradingData(ctx context.Context, courseID, blockID string, identity auth.Identity) (dto.GradingDataResponse, error)
	EnterGrade(ctx context.Context, courseID, blockID string, identity auth.Identity, payload dto.EnterGradeRequest) error
	RemoveGrade(ctx context.Context, courseID, blockID string, identity auth.Identity, payload dto.RemoveGradeRequest) error
}

type gradingService struct {
	blocks      repository.BlockRepository
	states      repository.StudentStateRepository
	submissions repository.SubmissionRepository
	scores      repository.ScoreRepository
	users       repository.UserRepository
	cache       *GradingCache
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewGradingService constructs the grading service.
func NewGradingService(
	blocks repository.BlockRepository,
	states repository.StudentStateRepository,
	submissions repository.SubmissionRepository,
	scores repository.ScoreRepository,
	users repository.UserRepository,
	cache *GradingCache,
	validate *validator.Validate,
	logger zerolog.Logger,
) GradingService {
	return &gradingService{
		blocks:      blocks,
		states:      states,
		submissions: submissions,
		scores:      scores,
		users:       users,
		cache:       cache,
		validator:   validate,
		logger:      logger.With().Str("component", "grading_service").Logger(),
		now:         time.Now,
	}
}

func (s *gradingService) GradingData(ctx context.Context, courseID, blockID string, identity auth.Identity) (dto.GradingDataResponse, error) {
	if !identity.IsCourseTeam() {
		return dto.GradingDataResponse{}, ErrNotCourseTeam
	}

	block, err := s.getBlock(ctx, courseID, blockID)
	if err != nil {
		return dto.GradingDataResponse{}, err
	}

	if cached, ok := s.cache.Get(ctx, courseID, blockID); ok {
		return cached, nil
	}

	studentIDs, err := s.submissions.ListStudentIDs(ctx, courseID, blockID)
	if err != nil {
		return dto.GradingDataResponse{}, err
	}

	assignments := make([]dto.GradingAssignment, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		row, ok, err := s.buildGradingRow(ctx, block, studentID)
		if err != nil {
			return dto.GradingDataResponse{}, err
		}
		if !ok {
			continue
		}
		assignments = append(assignments, row)
	}

	response := dto.GradingDataResponse{
		Assignments: assignments,
		MaxScore:    block.Points,
		DisplayName: block.DisplayName,
	}

	s.cache.Set(ctx, courseID, blockID, response)

	return response, nil
}

// buildGradingRow assembles one grading screen row. Students without a
// submission are skipped, not errors.
func (s *gradingService) buildGradingRow(ctx context.Context, block models.Block, studentID string) (dto.GradingAssignment, bool, error) {
	item := models.NewStudentItem(studentID, block.CourseID, block.BlockID)

	submissions, err := s.submissions.ListByStudentItem(ctx, item)
	if err != nil {
		return dto.GradingAssignment{}, false, err
	}
	if len(submissions) == 0 {
		return dto.GradingAssignment{}, false, nil
	}
	latest := submissions[0]

	answer, err := latest.DecodeAnswer()
	if err != nil {
		return dto.GradingAssignment{}, false, err
	}

	username := studentID
	if user, err := s.users.GetByAnonymousID(ctx, studentID); err == nil {
		username = user.Username
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.GradingAssignment{}, false, err
	}

	rawScore, err := s.rawScoreFor(ctx, block, item)
	if err != nil {
		return dto.GradingAssignment{}, false, err
	}

	return dto.GradingAssignment{
		StudentID:        studentID,
		SubmissionID:     latest.UUID,
		Username:         username,
		AnswerBody:       answer.MindMapBody,
		SubmissionStatus: string(answer.Status),
		Timestamp:        latest.CreatedAt,
		Score:            rawScore,
	}, true, nil
}

// rawScoreFor prefers the cached raw score; when only the weighted value
// survives it is projected back onto the raw scale.
func (s *gradingService) rawScoreFor(ctx context.Context, block models.Block, item models.StudentItem) (*int, error) {
	state, err := s.states.GetOrCreate(ctx, block.CourseID, block.BlockID, item.StudentID)
	if err != nil {
		return nil, err
	}
	if state.RawScore != nil {
		return state.RawScore, nil
	}

	score, err := s.scores.Get(ctx, item)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	raw, err := WeightedToRaw(score.PointsEarned, block.Points, block.Weight)
	if err != nil {
		return nil, err
	}

	return &raw, nil
}

func (s *gradingService) EnterGrade(ctx context.Context, courseID, blockID string, identity auth.Identity, payload dto.EnterGradeRequest) error {
	tracer := otel.Tracer("github.com/edunext/mindmap-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.enter_grade")
	span.SetAttributes(
		attribute.String("grading.course_id", courseID),
		attribute.String("grading.block_id", blockID),
	)
	defer span.End()

	if !identity.IsCourseTeam() {
		span.SetStatus(codes.Error, "permission_denied")
		return ErrNotCourseTeam
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return err
	}

	block, err := s.getBlock(ctx, courseID, blockID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	raw := *payload.Grade
	if raw > block.Points {
		span.SetStatus(codes.Error, "score_exceeds_max")
		return ErrScoreExceedsMax
	}

	submission, err := s.submissions.GetByUUID(ctx, payload.SubmissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "submission_not_found")
			return ErrSubmissionNotFound
		}
		span.RecordError(err)
		return err
	}

	// A UUID from another block must not produce a score keyed to this one.
	if submission.CourseID != courseID || submission.ItemID != blockID {
		span.SetStatus(codes.Error, "submission_not_found")
		return ErrSubmissionNotFound
	}

	weighted, err := RawToWeighted(raw, block.Points, block.Weight)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "score_conversion_failed")
		return err
	}

	item := models.NewStudentItem(submission.StudentID, courseID, blockID)
	score := models.Score{
		StudentID:      item.StudentID,
		CourseID:       item.CourseID,
		ItemID:         item.ItemID,
		PointsEarned:   weighted,
		PointsPossible: block.Weight,
	}
	if err := s.scores.Set(ctx, &score); err != nil {
		span.RecordError(err)
		return err
	}

	state, err := s.states.GetOrCreate(ctx, courseID, blockID, submission.StudentID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	state.RawScore = &raw
	state.Status = models.StatusCompleted
	if err := s.states.Update(ctx, &state); err != nil {
		span.RecordError(err)
		return err
	}

	s.cache.Invalidate(ctx, courseID, blockID)

	span.SetAttributes(
		attribute.Int("grading.raw_score", raw),
		attribute.Int("grading.weighted_score", weighted),
	)

	s.logger.Info().
		Str("submission_uuid", submission.UUID).
		Str("student_id", submission.StudentID).
		Int("raw_score", raw).
		Int("weighted_score", weighted).
		Msg("grade recorded")

	return nil
}

func (s *gradingService) RemoveGrade(ctx context.Context, courseID, blockID string, identity auth.Identity, payload dto.RemoveGradeRequest) error {
	if !identity.IsCourseTeam() {
		return ErrNotCourseTeam
	}

	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	item := models.NewStudentItem(payload.StudentID, courseID, blockID)
	if err := s.scores.Delete(ctx, item); err != nil {
		return err
	}

	// The cached raw score stays in place: a student whose grade was removed
	// may be re-graded but may not re-submit.
	state, err := s.states.GetOrCreate(ctx, courseID, blockID, payload.StudentID)
	if err != nil {
		return err
	}
	state.Status = models.StatusSubmitted
	if err := s.states.Update(ctx, &state); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, courseID, blockID)

	s.logger.Info().
		Str("student_id", payload.StudentID).
		Str("block_id", blockID).
		Msg("grade removed")

	return nil
}

func (s *gradingService) getBlock(ctx context.Context, courseID, blockID string) (models.Block, error) {
	block, err := s.blocks.GetByCourseAndBlock(ctx, courseID, blockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Block{}, ErrBlockNotFound
		}
		return models.Block{}, err
	}

	return block, nil
}
