package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBlockPastDue(t *testing.T) {
	reference := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	hourAgo := reference.Add(-time.Hour)
	hourAhead := reference.Add(time.Hour)
	grace := int64(2 * 60 * 60)

	cases := []struct {
		name    string
		due     *time.Time
		grace   *int64
		pastDue bool
	}{
		{name: "no due date never closes", due: nil, grace: nil, pastDue: false},
		{name: "grace without due date is ignored", due: nil, grace: &grace, pastDue: false},
		{name: "before due date", due: &hourAhead, grace: nil, pastDue: false},
		{name: "after due date", due: &hourAgo, grace: nil, pastDue: true},
		{name: "inside grace period", due: &hourAgo, grace: &grace, pastDue: false},
		{name: "exactly at due date", due: &reference, grace: nil, pastDue: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			block := Block{DueDate: tc.due, GracePeriodSeconds: tc.grace}
			require.Equal(t, tc.pastDue, block.PastDue(tc.due, reference))
		})
	}
}

func TestBlockCloseDateAddsGrace(t *testing.T) {
	due := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	grace := int64(300)
	block := Block{DueDate: &due, GracePeriodSeconds: &grace}

	closed := block.CloseDate(&due)
	require.NotNil(t, closed)
	require.Equal(t, due.Add(5*time.Minute), *closed)

	require.Nil(t, Block{GracePeriodSeconds: &grace}.CloseDate(nil))
}

func TestStudentStateCanSubmit(t *testing.T) {
	score := 50

	cases := []struct {
		name    string
		state   StudentState
		pastDue bool
		allowed bool
	}{
		{name: "fresh state open window", state: StudentState{Status: StatusNotAttempted}, allowed: true},
		{name: "resubmission while submitted", state: StudentState{Status: StatusSubmitted}, allowed: true},
		{name: "past due", state: StudentState{Status: StatusNotAttempted}, pastDue: true, allowed: false},
		{name: "already graded", state: StudentState{Status: StatusCompleted, RawScore: &score}, allowed: false},
		{name: "score cached without completion", state: StudentState{Status: StatusSubmitted, RawScore: &score}, allowed: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allowed, tc.state.CanSubmit(tc.pastDue))
		})
	}
}

func TestDefaultMindMapBody(t *testing.T) {
	var body struct {
		Format string `json:"format"`
		Data   []struct {
			ID     string `json:"id"`
			IsRoot string `json:"isroot"`
			Topic  string `json:"topic"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(DefaultMindMapBody(), &body))
	require.Equal(t, "node_array", body.Format)
	require.Len(t, body.Data, 1)
	require.Equal(t, "root", body.Data[0].ID)
	require.Equal(t, "true", body.Data[0].IsRoot)
}

func TestSubmissionAnswerRoundTrip(t *testing.T) {
	var submission Submission
	require.NoError(t, submission.SetAnswer(SubmissionAnswer{
		MindMapBody: `{"format":"node_array"}`,
		Status:      StatusSubmitted,
	}))

	answer, err := submission.DecodeAnswer()
	require.NoError(t, err)
	require.Equal(t, StatusSubmitted, answer.Status)
	require.Equal(t, `{"format":"node_array"}`, answer.MindMapBody)
}
