package models

import (
	"time"
)

// TaskFile holds attachment metadata. The bytes live in external storage
// addressed by StorageID; this service only tracks the reference.
type TaskFile struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TaskID      uint64    `gorm:"index;not null" json:"task_id"`
	AuthorID    uint64    `gorm:"not null" json:"author_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	ContentType string    `gorm:"type:varchar(255);not null" json:"content_type"`
	StorageID   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"storage_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Task   Task `gorm:"foreignKey:TaskID" json:"-"`
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

// SafeFile is one entry of the attachment allow-list. Seeded at migration,
// read-only at runtime.
type SafeFile struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	ContentType string `gorm:"type:varchar(255);uniqueIndex;not null" json:"content_type"`
}
