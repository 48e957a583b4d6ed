package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "NEW"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskVisibility string

const (
	VisibilityPublic  TaskVisibility = "public"
	VisibilityPrivate TaskVisibility = "private"
)

// Task is the central record. Number is the public identifier: unique,
// strictly increasing, never reused. OwnerName duplicates the owner's
// display name so list reads never join; it is written only together with
// OwnerID (both set or both null).
type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Number       uint64         `gorm:"uniqueIndex;not null" json:"number"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Status       TaskStatus     `gorm:"type:varchar(20);not null;default:'NEW'" json:"status"`
	Visibility   TaskVisibility `gorm:"type:varchar(10);not null;default:'public'" json:"visibility"`
	OwnerID      *uint64        `gorm:"index" json:"owner_id"`
	OwnerName    *string        `gorm:"type:varchar(255)" json:"owner_name"`
	CommentCount int64          `gorm:"not null;default:0" json:"comment_count"`
	FileCount    int64          `gorm:"not null;default:0" json:"file_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Relations
	Owner    *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Comments []Comment  `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	Files    []TaskFile `gorm:"foreignKey:TaskID" json:"files,omitempty"`
}
