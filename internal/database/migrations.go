package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/gorm"
)

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Comment{},
		&models.TaskFile{},
		&models.SafeFile{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := SeedSafeFiles(DB); err != nil {
		return fmt.Errorf("failed to seed safe files: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// defaultSafeFiles is the attachment allow-list installed on first migration.
var defaultSafeFiles = []models.SafeFile{
	{Name: "PNG image", ContentType: "image/png"},
	{Name: "JPEG image", ContentType: "image/jpeg"},
	{Name: "GIF image", ContentType: "image/gif"},
	{Name: "PDF document", ContentType: "application/pdf"},
	{Name: "Plain text", ContentType: "text/plain"},
	{Name: "CSV", ContentType: "text/csv"},
}

// SeedSafeFiles inserts the default allow-list entries that are not yet
// present. Existing rows are left alone so operators can prune the list.
func SeedSafeFiles(db *gorm.DB) error {
	for _, sf := range defaultSafeFiles {
		var existing models.SafeFile
		err := db.Where("content_type = ?", sf.ContentType).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		entry := sf
		if err := db.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}
