package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edunext/mindmap-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

const testMindMap = `{"meta":{"name":"Mind Map","version":"0.1"},"format":"node_array","data":[{"id":"root","isroot":"true","topic":"Root"},{"id":"n1","parentid":"root","topic":"Idea"}]}`

type fakeBlockRepo struct {
	block   models.Block
	missing bool
	upserts int
}

func (f *fakeBlockRepo) GetByCourseAndBlock(ctx context.Context, courseID, blockID string) (models.Block, error) {
	if f.missing {
		return models.Block{}, gorm.ErrRecordNotFound
	}
	return f.block, nil
}

func (f *fakeBlockRepo) Upsert(ctx context.Context, block *models.Block) error {
	f.upserts++
	f.block = *block
	f.missing = false
	return nil
}

type fakeStateRepo struct {
	states  map[string]models.StudentState
	updates int
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{states: make(map[string]models.StudentState)}
}

func (f *fakeStateRepo) GetOrCreate(ctx context.Context, courseID, blockID, studentID string) (models.StudentState, error) {
	key := courseID + "/" + blockID + "/" + studentID
	if state, ok := f.states[key]; ok {
		return state, nil
	}
	state := models.StudentState{
		CourseID:  courseID,
		BlockID:   blockID,
		StudentID: studentID,
		Status:    models.StatusNotAttempted,
	}
	f.states[key] = state
	return state, nil
}

func (f *fakeStateRepo) Update(ctx context.Context, state *models.StudentState) error {
	f.updates++
	key := state.CourseID + "/" + state.BlockID + "/" + state.StudentID
	f.states[key] = *state
	return nil
}

func (f *fakeStateRepo) get(courseID, blockID, studentID string) models.StudentState {
	return f.states[courseID+"/"+blockID+"/"+studentID]
}

type fakeSubmissionRepo struct {
	submissions []models.Submission
	creates     int
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	f.creates++
	submission.CreatedAt = time.Now()
	f.submissions = append([]models.Submission{*submission}, f.submissions...)
	return nil
}

func (f *fakeSubmissionRepo) GetByUUID(ctx context.Context, uuid string) (models.Submission, error) {
	for _, submission := range f.submissions {
		if submission.UUID == uuid {
			return submission, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (f *fakeSubmissionRepo) ListByStudentItem(ctx context.Context, item models.StudentItem) ([]models.Submission, error) {
	var matched []models.Submission
	for _, submission := range f.submissions {
		if submission.StudentID == item.StudentID && submission.CourseID == item.CourseID && submission.ItemID == item.ItemID {
			matched = append(matched, submission)
		}
	}
	return matched, nil
}

func (f *fakeSubmissionRepo) ListStudentIDs(ctx context.Context, courseID, itemID string) ([]string, error) {
	seen := make(map[string]struct{})
	var studentIDs []string
	for _, submission := range f.submissions {
		if submission.CourseID != courseID || submission.ItemID != itemID {
			continue
		}
		if _, ok := seen[submission.StudentID]; ok {
			continue
		}
		seen[submission.StudentID] = struct{}{}
		studentIDs = append(studentIDs, submission.StudentID)
	}
	return studentIDs, nil
}

type fakeScoreRepo struct {
	scores  map[string]models.Score
	sets    int
	deletes int
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{scores: make(map[string]models.Score)}
}

func scoreKey(item models.StudentItem) string {
	return item.StudentID + "/" + item.CourseID + "/" + item.ItemID
}

func (f *fakeScoreRepo) Get(ctx context.Context, item models.StudentItem) (models.Score, error) {
	if score, ok := f.scores[scoreKey(item)]; ok {
		return score, nil
	}
	return models.Score{}, gorm.ErrRecordNotFound
}

func (f *fakeScoreRepo) Set(ctx context.Context, score *models.Score) error {
	f.sets++
	f.scores[score.StudentID+"/"+score.CourseID+"/"+score.ItemID] = *score
	return nil
}

func (f *fakeScoreRepo) Delete(ctx context.Context, item models.StudentItem) error {
	f.deletes++
	delete(f.scores, scoreKey(item))
	return nil
}

type fakeUserRepo struct {
	users map[string]models.User
}

func (f *fakeUserRepo) GetByAnonymousID(ctx context.Context, anonymousID string) (models.User, error) {
	if f.users != nil {
		if user, ok := f.users[anonymousID]; ok {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

type fakeExtensionRepo struct {
	due *time.Time
}

func (f *fakeExtensionRepo) Get(ctx context.Context, courseID, blockID, studentID string) (*time.Time, error) {
	return f.due, nil
}

func (f *fakeExtensionRepo) Upsert(ctx context.Context, extension *models.DueDateExtension) error {
	f.due = &extension.Due
	return nil
}
