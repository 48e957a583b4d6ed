package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/subscription"
	"github.com/taskboard/taskboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrFileNotFound       = errors.New("file not found")
	ErrFileNameRequired   = errors.New("file name is required")
	ErrFileTypeNotAllowed = errors.New("file type is not on the allow-list")
	ErrNotFileOwner       = errors.New("only the uploader or the task owner can delete this file")
)

// FileService handles task attachment metadata
type FileService struct {
	fileRepo repository.FileRepository
	taskRepo repository.TaskRepository
	hub      *subscription.Hub
}

// NewFileService creates a new FileService
func NewFileService(fileRepo repository.FileRepository, taskRepo repository.TaskRepository, hub *subscription.Hub) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		taskRepo: taskRepo,
		hub:      hub,
	}
}

// SaveFileInput carries the attachment metadata of a saveFile call.
type SaveFileInput struct {
	Name        string
	ContentType string
}

// SaveFile records an attachment on a task. The content type must be on the
// safe-file allow-list; the storage id addressing the external blob store is
// generated here. The record insert and the task's file-count bump are one
// transaction.
func (s *FileService) SaveFile(principal *models.User, taskNumber uint64, input SaveFileInput) (*models.TaskFile, error) {
	if principal == nil {
		return nil, ErrNotAuthenticated
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrFileNameRequired
	}

	allowed, err := s.typeAllowed(input.ContentType)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrFileTypeNotAllowed
	}

	task, err := s.taskRepo.FindByNumber(taskNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if !taskVisibleTo(task, &principal.ID) {
		return nil, ErrTaskNotFound
	}

	file := &models.TaskFile{
		TaskID:      task.ID,
		AuthorID:    principal.ID,
		Name:        input.Name,
		ContentType: input.ContentType,
		StorageID:   utils.NewStorageID(),
	}

	if err := s.fileRepo.CreateWithCount(file); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	s.hub.Publish(subscription.TopicTasks)
	s.hub.Publish(subscription.TopicTask(task.Number))

	return file, nil
}

// DeleteFile removes an attachment record and decrements the task's file
// count. Permitted for the uploader and for the task owner.
func (s *FileService) DeleteFile(principal *models.User, taskNumber, fileID uint64) error {
	if principal == nil {
		return ErrNotAuthenticated
	}

	task, err := s.taskRepo.FindByNumber(taskNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}
	if !taskVisibleTo(task, &principal.ID) {
		return ErrTaskNotFound
	}

	file, err := s.fileRepo.FindByID(fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to find file: %w", err)
	}
	if file.TaskID != task.ID {
		return ErrFileNotFound
	}

	isUploader := file.AuthorID == principal.ID
	isOwner := task.OwnerID != nil && *task.OwnerID == principal.ID
	if !isUploader && !isOwner {
		return ErrNotFileOwner
	}

	if err := s.fileRepo.DeleteWithCount(file); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.hub.Publish(subscription.TopicTasks)
	s.hub.Publish(subscription.TopicTask(task.Number))

	return nil
}

// SafeFiles returns the attachment allow-list.
func (s *FileService) SafeFiles() ([]models.SafeFile, error) {
	safeFiles, err := s.fileRepo.ListSafeFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list safe files: %w", err)
	}
	return safeFiles, nil
}

func (s *FileService) typeAllowed(contentType string) (bool, error) {
	if strings.TrimSpace(contentType) == "" {
		return false, nil
	}

	safeFiles, err := s.fileRepo.ListSafeFiles()
	if err != nil {
		return false, fmt.Errorf("failed to load safe files: %w", err)
	}

	for _, sf := range safeFiles {
		if strings.EqualFold(sf.ContentType, contentType) {
			return true, nil
		}
	}
	return false, nil
}
