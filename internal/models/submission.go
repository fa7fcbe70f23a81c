package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// StudentItem identifies the (student, course, block) triple the submissions
// and score stores are keyed by.
type StudentItem struct {
	StudentID string
	CourseID  string
	ItemID    string
	ItemType  string
}

// NewStudentItem builds the student item key for a mind-map block.
func NewStudentItem(studentID, courseID, itemID string) StudentItem {
	return StudentItem{
		StudentID: studentID,
		CourseID:  courseID,
		ItemID:    itemID,
		ItemType:  ItemTypeMindMap,
	}
}

// Submission is one immutable submission record. Re-submissions create new
// rows; the most recent row is authoritative.
type Submission struct {
	UUID      string         `gorm:"primaryKey;size:36" json:"uuid"`
	StudentID string         `gorm:"size:255;not null;index:idx_submissions_item" json:"student_id"`
	CourseID  string         `gorm:"size:255;not null;index:idx_submissions_item" json:"course_id"`
	ItemID    string         `gorm:"size:255;not null;index:idx_submissions_item" json:"item_id"`
	ItemType  string         `gorm:"size:64;not null" json:"item_type"`
	Answer    datatypes.JSON `gorm:"type:json" json:"answer"`
	CreatedAt time.Time      `json:"created_at"`
}

// SubmissionAnswer is the payload stored in a submission's answer column.
type SubmissionAnswer struct {
	MindMapBody string           `json:"mindmap_student_body"`
	Status      SubmissionStatus `json:"submission_status"`
}

// DecodeAnswer unmarshals the stored answer payload.
func (s Submission) DecodeAnswer() (SubmissionAnswer, error) {
	var answer SubmissionAnswer
	if len(s.Answer) == 0 {
		return answer, nil
	}
	if err := json.Unmarshal(s.Answer, &answer); err != nil {
		return SubmissionAnswer{}, err
	}
	return answer, nil
}

// SetAnswer serializes the answer payload into the JSON storage column.
func (s *Submission) SetAnswer(answer SubmissionAnswer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	s.Answer = datatypes.JSON(data)
	return nil
}

// Score is the weighted score persisted for a student item. The raw score an
// instructor entered is cached on StudentState; only the weighted projection
// lives here.
type Score struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      string    `gorm:"size:255;not null;uniqueIndex:idx_scores_item" json:"student_id"`
	CourseID       string    `gorm:"size:255;not null;uniqueIndex:idx_scores_item" json:"course_id"`
	ItemID         string    `gorm:"size:255;not null;uniqueIndex:idx_scores_item" json:"item_id"`
	PointsEarned   int       `gorm:"not null" json:"points_earned"`
	PointsPossible float64   `gorm:"not null" json:"points_possible"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
