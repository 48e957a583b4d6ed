package repository

import (
	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// GormFileRepository is a GORM implementation of FileRepository
type GormFileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *gorm.DB) FileRepository {
	return &GormFileRepository{db: db}
}

// CreateWithCount inserts the file record and bumps the task's file_count in
// one transaction, mirroring the comment append path.
func (r *GormFileRepository) CreateWithCount(file *models.TaskFile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(file).Error; err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("id = ?", file.TaskID).
			UpdateColumn("file_count", gorm.Expr("file_count + ?", 1)).Error
	})
}

// DeleteWithCount removes the file record and decrements the task's
// file_count in one transaction.
func (r *GormFileRepository) DeleteWithCount(file *models.TaskFile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TaskFile{}, file.ID).Error; err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("id = ?", file.TaskID).
			UpdateColumn("file_count", gorm.Expr("file_count - ?", 1)).Error
	})
}

// FindByID finds a file record by ID
func (r *GormFileRepository) FindByID(id uint64) (*models.TaskFile, error) {
	var file models.TaskFile
	if err := r.db.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// ListSafeFiles returns the attachment allow-list
func (r *GormFileRepository) ListSafeFiles() ([]models.SafeFile, error) {
	var safeFiles []models.SafeFile
	if err := r.db.Order("id ASC").Find(&safeFiles).Error; err != nil {
		return nil, err
	}
	return safeFiles, nil
}
