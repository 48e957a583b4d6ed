package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName  string    `gorm:"type:varchar(255);not null" json:"display_name"`
	AvatarURL    string    `gorm:"type:varchar(512)" json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	OwnedTasks []Task    `gorm:"foreignKey:OwnerID" json:"-"`
	Comments   []Comment `gorm:"foreignKey:AuthorID" json:"-"`
}
