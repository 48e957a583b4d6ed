package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/subscription"
	"gorm.io/gorm"
)

var (
	ErrCommentBodyEmpty = errors.New("comment body cannot be empty")
)

// CommentService handles comment business logic
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	hub         *subscription.Hub
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository, hub *subscription.Hub) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		hub:         hub,
	}
}

// Append adds a comment to a task on behalf of the principal. Anonymous
// comments are rejected. The insert and the comment-count bump happen in one
// transaction; readers never see one without the other.
func (s *CommentService) Append(principal *models.User, taskNumber uint64, body string) (*models.Comment, error) {
	if principal == nil {
		return nil, ErrNotAuthenticated
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrCommentBodyEmpty
	}

	task, err := s.findVisibleTask(taskNumber, &principal.ID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID:     task.ID,
		AuthorID:   principal.ID,
		AuthorName: principal.DisplayName,
		Body:       body,
	}

	if err := s.commentRepo.AppendToTask(comment); err != nil {
		return nil, fmt.Errorf("failed to append comment: %w", err)
	}

	s.hub.Publish(subscription.TopicTasks)
	s.hub.Publish(subscription.TopicTask(task.Number))
	s.hub.Publish(subscription.TopicComments(task.Number))

	return comment, nil
}

// List returns a task's comments ordered by creation time.
func (s *CommentService) List(taskNumber uint64, viewerID *uint64) ([]models.Comment, error) {
	task, err := s.findVisibleTask(taskNumber, viewerID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

func (s *CommentService) findVisibleTask(number uint64, viewerID *uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByNumber(number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !taskVisibleTo(task, viewerID) {
		return nil, ErrTaskNotFound
	}

	return task, nil
}
