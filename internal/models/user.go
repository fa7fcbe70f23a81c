package models

import "time"

// User maps the host-issued anonymous student identifier to a displayable
// account. Only the fields the grading screen needs are mirrored here.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AnonymousID string    `gorm:"size:255;not null;uniqueIndex" json:"anonymous_id"`
	Username    string    `gorm:"size:255;not null" json:"username"`
	FullName    string    `gorm:"size:255" json:"full_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DueDateExtension grants a single student extra time on one block. The
// effective due date is the later of the block due date and the extension.
type DueDateExtension struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  string    `gorm:"size:255;not null;uniqueIndex:idx_due_extensions_key" json:"course_id"`
	BlockID   string    `gorm:"size:255;not null;uniqueIndex:idx_due_extensions_key" json:"block_id"`
	StudentID string    `gorm:"size:255;not null;uniqueIndex:idx_due_extensions_key" json:"student_id"`
	Due       time.Time `gorm:"not null" json:"due"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
