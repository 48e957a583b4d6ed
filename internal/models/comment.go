package models

import (
	"time"
)

// Comment is append-only; records are never edited or deleted. AuthorName is
// denormalized at write time, same policy as Task.OwnerName.
type Comment struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	TaskID     uint64    `gorm:"index;not null" json:"task_id"`
	AuthorID   uint64    `gorm:"not null" json:"author_id"`
	AuthorName string    `gorm:"type:varchar(255);not null" json:"author_name"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Task   Task `gorm:"foreignKey:TaskID" json:"-"`
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}
