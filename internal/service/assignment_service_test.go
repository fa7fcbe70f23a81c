package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/edunext/mindmap-api/internal/auth"
	"github.com/edunext/mindmap-api/internal/dto"
	"github.com/edunext/mindmap-api/internal/models"
)

type assignmentFixture struct {
	service     AssignmentService
	blocks      *fakeBlockRepo
	states      *fakeStateRepo
	submissions *fakeSubmissionRepo
	extensions  *fakeExtensionRepo
}

func newAssignmentFixture(block models.Block) *assignmentFixture {
	blocks := &fakeBlockRepo{block: block}
	states := newFakeStateRepo()
	submissions := &fakeSubmissionRepo{}
	extensions := &fakeExtensionRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewAssignmentService(
		blocks,
		states,
		submissions,
		NewDueDateResolver(extensions),
		NewGradingCache(nil, 0, testLogger()),
		validate,
		testLogger(),
	)

	return &assignmentFixture{
		service:     svc,
		blocks:      blocks,
		states:      states,
		submissions: submissions,
		extensions:  extensions,
	}
}

func testBlock() models.Block {
	return models.Block{
		CourseID:    "course-1",
		BlockID:     "block-1",
		DisplayName: "Mind Map",
		HasScore:    true,
		Points:      100,
		Weight:      10,
		Body:        models.DefaultMindMapBody(),
	}
}

func learner() auth.Identity {
	return auth.Identity{AnonymousID: "anon-1", Role: auth.RoleStudent}
}

func TestSubmitRecordsSubmissionAndState(t *testing.T) {
	fixture := newAssignmentFixture(testBlock())

	err := fixture.service.Submit(context.Background(), "course-1", "block-1", learner(), dto.SubmitAssignmentRequest{
		MindMap: json.RawMessage(testMindMap),
	})
	require.NoError(t, err)
	require.Equal(t, 1, fixture.submissions.creates)

	answer, err := fixture.submissions.submissions[0].DecodeAnswer()
	require.NoError(t, err)
	require.Equal(t, models.StatusSubmitted, answer.Status)
	require.Equal(t, testMindMap, answer.MindMapBody)

	state := fixture.states.get("course-1", "block-1", "anon-1")
	require.Equal(t, models.StatusSubmitted, state.Status)
	require.JSONEq(t, testMindMap, string(state.Body))
}

func TestSubmitAgainWhileUngradedCreatesNewRow(t *testing.T) {
	fixture := newAssignmentFixture(testBlock())
	payload := dto.SubmitAssignmentRequest{MindMap: json.RawMessage(testMindMap)}

	require.NoError(t, fixture.service.Submit(context.Background(), "course-1", "block-1", learner(), payload))
	require.NoError(t, fixture.service.Submit(context.Background(), "course-1", "block-1", learner(), payload))
	require.Equal(t, 2, fixture.submissions.creates)
}

func TestSubmitRejectedPastDue(t *testing.T) {
	block := testBlock()
	due := time.Now().Add(-time.Hour)
	block.DueDate = &due
	fixture := newAssignmentFixture(block)

	err := fixture.service.Submit(context.Background(), "course-1", "block-1", learner(), dto.SubmitAssignmentRequest{
		MindMap: json.RawMessage(testMindMap),
	})
	require.ErrorIs(t, err, ErrSubmitNotAllowed)
	require.Zero(t, fixture.submissions.creates)
}

func TestSubmitAllowedInsideGracePeriod(t *testing.T) {
	block := testBlock()
	due := time.Now().Add(-time.Hour)
	grace := int64(2 * 60 * 60)
	block.DueDate = &due
	block.GracePeriodSeconds = &grace
	fixture := newAssignmentFixture(block)

	err := fixture.service.Submit(context.Background(), "course-1", "block-1", learner(), dto.SubmitAssignmentRequest{
		MindMap: json.RawMessage(testMindMap),
	})
	require.NoError(t, err)
}

func TestSubmitAllowedUnderExtension(t *testing.T) {
	block := testBlock()
	due := time.Now().Add(-time.Hour)
	block.DueDate = &due
	fixture := newAssignmentFixture(block)

	extended := time.Now().Add(time.Hour)
	fixture.extensions.due = &extended

	err := fixture.service.Submit(context.Background(), "course-1", "block-1", learner(), dto.SubmitAssignmentRequest{
		MindMap: json.RawMessage(testMindMap),
	})
	require.NoError(t, err)
}

func TestSubmitRejectedAfterGrading(t *testing.T) {
	fixture := newAssignmentFixture(testBlock())
	score := 80
	fixture.states.states["course-1/block-1/anon-1"] = models.StudentState{
		CourseID:  "course-1",
		BlockID:   "block-1",
		StudentID: "anon-1",
		Status:    models.StatusCompleted,
		RawScore:  &score,
	}

	err := fixture.service.Submit(context.Background(), "course-1", "block-1", learner(), dto.SubmitAssignmentRequest{
		MindMap: json.RawMessage(testMindMap),
	})
	require.ErrorIs(t, err, ErrSubmitNotAllowed)
}

func TestSubmitRejectsMalformedBody(t *testing.T) {
	fixture := newAssignmentFixture(testBlock())

	err := fixture.service.Submit(context.Background(), "course-1", "block-1", learner(), dto.SubmitAssignmentRequest{
		MindMap: json.RawMessage(`{"format":"freehand","data":[]}`),
	})
	require.ErrorIs(t, err, ErrInvalidMindMap)
	require.Zero(t, fixture.submissions.creates)
}

func TestSubmitUnknownBlock(t *testing.T) {
	fixture := newAssignmentFixture(models.Block{})
	fixture.blocks.missing = true

	err := fixture.service.Submit(context.Background(), "course-1", "block-1", learner(), dto.SubmitAssignmentRequest{
		MindMap: json.RawMessage(testMindMap),
	})
	require.ErrorIs(t, err, ErrBlockNotFound)
}

func TestSaveStoresWorkingBody(t *testing.T) {
	fixture := newAssignmentFixture(testBlock())

	err := fixture.service.Save(context.Background(), "course-1", "block-1", learner(), dto.SaveAssignmentRequest{
		MindMap: json.RawMessage(testMindMap),
	})
	require.NoError(t, err)

	state := fixture.states.get("course-1", "block-1", "anon-1")
	require.JSONEq(t, testMindMap, string(state.Body))
	require.Equal(t, models.StatusNotAttempted, state.Status, "saving must not advance the lifecycle")
	require.Zero(t, fixture.submissions.creates)
}

func TestViewContextDefaults(t *testing.T) {
	block := testBlock()
	block.Body = nil
	fixture := newAssignmentFixture(block)

	view, err := fixture.service.ViewContext(context.Background(), "course-1", "block-1", learner())
	require.NoError(t, err)
	require.True(t, view.InStudentView)
	require.True(t, view.Editable)
	require.True(t, view.CanSubmitAssignment)
	require.False(t, view.IsInstructor)
	require.Equal(t, string(models.StatusNotAttempted), view.SubmissionStatus)
	require.Nil(t, view.Score)
	require.Equal(t, 100, view.MaxScore)
	require.JSONEq(t, string(models.DefaultMindMapBody()), string(view.MindMap))
}

func TestViewContextStaticBlockNotEditable(t *testing.T) {
	block := testBlock()
	block.IsStatic = true
	block.Body = nil
	fixture := newAssignmentFixture(block)

	view, err := fixture.service.ViewContext(context.Background(), "course-1", "block-1", learner())
	require.NoError(t, err)
	require.False(t, view.Editable)
	require.True(t, view.CanSubmitAssignment)
	require.JSONEq(t, string(models.DefaultMindMapBody()), string(view.MindMap))
}

func TestViewContextPrefersStudentBody(t *testing.T) {
	fixture := newAssignmentFixture(testBlock())

	require.NoError(t, fixture.service.Save(context.Background(), "course-1", "block-1", learner(), dto.SaveAssignmentRequest{
		MindMap: json.RawMessage(testMindMap),
	}))

	view, err := fixture.service.ViewContext(context.Background(), "course-1", "block-1", learner())
	require.NoError(t, err)
	require.JSONEq(t, testMindMap, string(view.MindMap))
}

func TestViewContextAfterGradingLocksSubmission(t *testing.T) {
	fixture := newAssignmentFixture(testBlock())
	score := 80
	fixture.states.states["course-1/block-1/anon-1"] = models.StudentState{
		CourseID:  "course-1",
		BlockID:   "block-1",
		StudentID: "anon-1",
		Status:    models.StatusCompleted,
		RawScore:  &score,
	}

	view, err := fixture.service.ViewContext(context.Background(), "course-1", "block-1", learner())
	require.NoError(t, err)
	require.False(t, view.CanSubmitAssignment)
	require.False(t, view.Editable)
	require.Equal(t, string(models.StatusCompleted), view.SubmissionStatus)
	require.NotNil(t, view.Score)
	require.Equal(t, 80, *view.Score)
}

func TestViewContextInstructor(t *testing.T) {
	fixture := newAssignmentFixture(testBlock())

	view, err := fixture.service.ViewContext(context.Background(), "course-1", "block-1", auth.Identity{
		AnonymousID: "anon-staff",
		Role:        auth.RoleInstructor,
	})
	require.NoError(t, err)
	require.True(t, view.IsInstructor)
	require.True(t, view.InStudentView)
}
