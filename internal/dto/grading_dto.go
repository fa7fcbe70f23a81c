package dto

import "time"

// EnterGradeRequest records an instructor-entered raw score for a submission.
// Grade is a pointer so an explicit zero passes the required check.
type EnterGradeRequest struct {
	Grade        *int   `json:"grade" validate:"required,gte=0"`
	SubmissionID string `json:"submission_id" validate:"required"`
}

// RemoveGradeRequest reverts a student's recorded score.
type RemoveGradeRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

// GradingAssignment is one student's row on the instructor grading screen.
type GradingAssignment struct {
	StudentID        string    `json:"student_id"`
	SubmissionID     string    `json:"submission_id"`
	Username         string    `json:"username"`
	AnswerBody       string    `json:"answer_body"`
	SubmissionStatus string    `json:"submission_status"`
	Timestamp        time.Time `json:"timestamp"`
	Score            *int      `json:"score"`
}

// GradingDataResponse is the instructor grading screen payload. Students who
// never submitted do not appear.
type GradingDataResponse struct {
	Assignments []GradingAssignment `json:"assignments"`
	MaxScore    int                 `json:"max_score"`
	DisplayName string              `json:"display_name"`
}
