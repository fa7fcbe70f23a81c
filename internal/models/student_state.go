package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubmissionStatus tracks a learner's progress through the assignment lifecycle.
type SubmissionStatus string

const (
	// StatusNotAttempted is the initial state before any submission exists.
	StatusNotAttempted SubmissionStatus = "not_attempted"
	// StatusSubmitted means the learner has handed in a mind map for grading.
	StatusSubmitted SubmissionStatus = "submitted"
	// StatusCompleted means an instructor has recorded a score.
	StatusCompleted SubmissionStatus = "completed"
)

// StudentState is the typed per-student record for one block: the lifecycle
// status, the cached raw score, and the learner's working mind-map body.
type StudentState struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	CourseID  string           `gorm:"size:255;not null;uniqueIndex:idx_student_states_key" json:"course_id"`
	BlockID   string           `gorm:"size:255;not null;uniqueIndex:idx_student_states_key" json:"block_id"`
	StudentID string           `gorm:"size:255;not null;uniqueIndex:idx_student_states_key" json:"student_id"`
	Status    SubmissionStatus `gorm:"size:32;not null;default:not_attempted" json:"status"`
	RawScore  *int             `json:"raw_score"`
	Body      datatypes.JSON   `gorm:"type:json" json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// CanSubmit reports whether a submission is allowed right now. A learner may
// submit while the window is open, no raw score has been recorded, and the
// assignment has not been completed; re-submitting while merely submitted
// overwrites the previous answer.
func (s StudentState) CanSubmit(pastDue bool) bool {
	return !pastDue && s.RawScore == nil && s.Status != StatusCompleted
}
