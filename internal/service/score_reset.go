package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/edunext/mindmap-api/internal/models"
	"github.com/edunext/mindmap-api/internal/repository"
)

// ScoreResetEvent is the inbound signal that a student's score was reset
// out-of-band by the host gradebook.
type ScoreResetEvent struct {
	AnonymousUserID string `json:"anonymous_user_id"`
	ItemID          string `json:"item_id"`
	CourseID        string `json:"course_id"`
}

// ScoreResetReceiver consumes score-reset events and regresses the affected
// student's lifecycle back to not-attempted.
type ScoreResetReceiver struct {
	conn         *nats.Conn
	subject      string
	submissions  repository.SubmissionRepository
	states       repository.StudentStateRepository
	scores       repository.ScoreRepository
	cache        *GradingCache
	logger       zerolog.Logger
	subscription *nats.Subscription
}

// NewScoreResetReceiver constructs the receiver. A nil connection disables it.
func NewScoreResetReceiver(conn *nats.Conn, subject string, submissions repository.SubmissionRepository, states repository.StudentStateRepository, scores repository.ScoreRepository, cache *GradingCache, logger zerolog.Logger) *ScoreResetReceiver {
	return &ScoreResetReceiver{
		conn:        conn,
		subject:     subject,
		submissions: submissions,
		states:      states,
		scores:      scores,
		cache:       cache,
		logger:      logger.With().Str("component", "score_reset_receiver").Logger(),
	}
}

// Start subscribes to the score-reset subject.
func (r *ScoreResetReceiver) Start(ctx context.Context) error {
	if r.conn == nil || r.subject == "" {
		return nil
	}

	subscription, err := r.conn.Subscribe(r.subject, func(msg *nats.Msg) {
		var event ScoreResetEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			r.logger.Warn().Err(err).Msg("discarding malformed score reset event")
			return
		}

		if err := r.HandleReset(ctx, event); err != nil {
			r.logger.Error().Err(err).
				Str("student_id", event.AnonymousUserID).
				Str("item_id", event.ItemID).
				Msg("failed to apply score reset")
		}
	})
	if err != nil {
		return err
	}

	r.subscription = subscription
	r.logger.Info().Str("subject", r.subject).Msg("listening for score reset events")

	return nil
}

// Close drops the subscription.
func (r *ScoreResetReceiver) Close() {
	if r.subscription != nil {
		_ = r.subscription.Unsubscribe()
	}
}

// HandleReset rewrites the latest submission's answer status to not-attempted,
// re-creates the submission record with that payload, deletes the persisted
// weighted score, and clears the local state so the student may submit again.
// No submissions means nothing to do.
func (r *ScoreResetReceiver) HandleReset(ctx context.Context, event ScoreResetEvent) error {
	item := models.NewStudentItem(event.AnonymousUserID, event.CourseID, event.ItemID)

	submissions, err := r.submissions.ListByStudentItem(ctx, item)
	if err != nil {
		return err
	}
	if len(submissions) == 0 {
		return nil
	}

	answer, err := submissions[0].DecodeAnswer()
	if err != nil {
		return err
	}
	answer.Status = models.StatusNotAttempted

	replacement := models.Submission{
		UUID:      uuid.NewString(),
		StudentID: item.StudentID,
		CourseID:  item.CourseID,
		ItemID:    item.ItemID,
		ItemType:  item.ItemType,
	}
	if err := replacement.SetAnswer(answer); err != nil {
		return err
	}
	if err := r.submissions.Create(ctx, &replacement); err != nil {
		return err
	}

	// A stale weighted score would resurface on the grading screen once the
	// student re-submits.
	if err := r.scores.Delete(ctx, item); err != nil {
		return err
	}

	state, err := r.states.GetOrCreate(ctx, event.CourseID, event.ItemID, event.AnonymousUserID)
	if err != nil {
		return err
	}
	state.Status = models.StatusNotAttempted
	state.RawScore = nil
	if err := r.states.Update(ctx, &state); err != nil {
		return err
	}

	r.cache.Invalidate(ctx, event.CourseID, event.ItemID)

	r.logger.Info().
		Str("student_id", event.AnonymousUserID).
		Str("item_id", event.ItemID).
		Msg("score reset applied")

	return nil
}
