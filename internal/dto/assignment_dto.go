package dto

import "encoding/json"

// SaveAssignmentRequest carries the learner's working mind map on save.
type SaveAssignmentRequest struct {
	MindMap json.RawMessage `json:"mind_map" validate:"required"`
}

// SubmitAssignmentRequest carries the mind map handed in for grading.
type SubmitAssignmentRequest struct {
	MindMap json.RawMessage `json:"mind_map" validate:"required"`
}

// HandlerResult is the minimal success envelope the save/submit/grade
// handlers return.
type HandlerResult struct {
	Success bool `json:"success"`
}

// ViewContextResponse is the data needed to render the block for the caller.
type ViewContextResponse struct {
	DisplayName         string          `json:"display_name"`
	InStudentView       bool            `json:"in_student_view"`
	Editable            bool            `json:"editable"`
	IsStatic            bool            `json:"is_static"`
	CanSubmitAssignment bool            `json:"can_submit_assignment"`
	SubmissionStatus    string          `json:"submission_status"`
	Score               *int            `json:"score"`
	MaxScore            int             `json:"max_score"`
	MindMap             json.RawMessage `json:"mind_map"`
	IsInstructor        bool            `json:"is_instructor"`
}
