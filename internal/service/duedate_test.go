package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edunext/mindmap-api/internal/models"
)

func TestEffectiveDueDateWithoutDeadline(t *testing.T) {
	extended := time.Now().Add(time.Hour)
	resolver := NewDueDateResolver(&fakeExtensionRepo{due: &extended})

	due, err := resolver.EffectiveDueDate(context.Background(), models.Block{}, "student-1")
	require.NoError(t, err)
	require.Nil(t, due, "an extension must not impose a deadline on a block without one")
}

func TestEffectiveDueDatePrefersLaterExtension(t *testing.T) {
	blockDue := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	extended := blockDue.Add(48 * time.Hour)
	block := models.Block{CourseID: "course-1", BlockID: "block-1", DueDate: &blockDue}

	resolver := NewDueDateResolver(&fakeExtensionRepo{due: &extended})
	due, err := resolver.EffectiveDueDate(context.Background(), block, "student-1")
	require.NoError(t, err)
	require.NotNil(t, due)
	require.Equal(t, extended, *due)
}

func TestEffectiveDueDateIgnoresEarlierExtension(t *testing.T) {
	blockDue := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	earlier := blockDue.Add(-48 * time.Hour)
	block := models.Block{CourseID: "course-1", BlockID: "block-1", DueDate: &blockDue}

	resolver := NewDueDateResolver(&fakeExtensionRepo{due: &earlier})
	due, err := resolver.EffectiveDueDate(context.Background(), block, "student-1")
	require.NoError(t, err)
	require.NotNil(t, due)
	require.Equal(t, blockDue, *due)
}

func TestEffectiveDueDateWithoutExtension(t *testing.T) {
	blockDue := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	block := models.Block{CourseID: "course-1", BlockID: "block-1", DueDate: &blockDue}

	resolver := NewDueDateResolver(&fakeExtensionRepo{})
	due, err := resolver.EffectiveDueDate(context.Background(), block, "student-1")
	require.NoError(t, err)
	require.NotNil(t, due)
	require.Equal(t, blockDue, *due)
}
