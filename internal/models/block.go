package models

import (
	"time"

	"gorm.io/datatypes"
)

// ItemTypeMindMap is the item type recorded on every submission produced by this service.
const ItemTypeMindMap = "mindmap"

// DefaultPoints is the maximum raw score assigned to new blocks.
const DefaultPoints = 100

// Block is one embeddable mind-map instance placed in a course page, together
// with its instructor-managed assignment configuration.
type Block struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CourseID           string         `gorm:"size:255;not null;uniqueIndex:idx_blocks_course_item" json:"course_id"`
	BlockID            string         `gorm:"size:255;not null;uniqueIndex:idx_blocks_course_item" json:"block_id"`
	DisplayName        string         `gorm:"size:255;not null;default:Mind Map" json:"display_name"`
	IsStatic           bool           `gorm:"not null;default:false" json:"is_static"`
	HasScore           bool           `gorm:"not null;default:true" json:"has_score"`
	Points             int            `gorm:"not null;default:100" json:"points"`
	Weight             float64        `gorm:"not null;default:0" json:"weight"`
	DueDate            *time.Time     `json:"due_date"`
	GracePeriodSeconds *int64         `json:"grace_period_seconds"`
	Body               datatypes.JSON `gorm:"type:json" json:"body"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// GracePeriod returns the configured grace period, or nil when none is set.
func (b Block) GracePeriod() *time.Duration {
	if b.GracePeriodSeconds == nil {
		return nil
	}
	period := time.Duration(*b.GracePeriodSeconds) * time.Second
	return &period
}

// CloseDate returns the instant the submission window closes given the
// effective due date. A nil result means the window never closes; the grace
// period only applies when a due date exists.
func (b Block) CloseDate(due *time.Time) *time.Time {
	if due == nil {
		return nil
	}
	if period := b.GracePeriod(); period != nil {
		closed := due.Add(*period)
		return &closed
	}
	return due
}

// PastDue reports whether the submission window has closed at the reference time.
func (b Block) PastDue(due *time.Time, reference time.Time) bool {
	closeDate := b.CloseDate(due)
	return closeDate != nil && reference.After(*closeDate)
}

// DefaultMindMapBody returns the instructor-authored default tree shown before
// anything has been saved.
func DefaultMindMapBody() datatypes.JSON {
	return datatypes.JSON([]byte(`{"meta":{"name":"Mind Map","version":"0.1"},"format":"node_array","data":[{"id":"root","isroot":"true","topic":"Root"}]}`))
}
