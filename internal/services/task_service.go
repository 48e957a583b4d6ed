package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/taskboard-api/internal/constants"
	"github.com/taskboard/taskboard-api/internal/cursor"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/subscription"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrNotTaskOwner      = errors.New("only the task owner can perform this action")
	ErrOwnerMismatch     = errors.New("task owner must match the authenticated user")
	ErrTitleRequired     = errors.New("title is required")
	ErrTitleEmpty        = errors.New("title cannot be empty")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidSortKey    = errors.New("invalid sort key")
	ErrInvalidFilter     = errors.New("invalid filter value")
	ErrInvalidCursor     = errors.New("invalid continuation cursor")
	ErrInvalidVisibility = errors.New("invalid task visibility")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	hub      *subscription.Hub
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, hub *subscription.Hub) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		hub:      hub,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Visibility  models.TaskVisibility
	OwnerID     *uint64
}

// CreateTask creates a task for the authenticated principal, assigning the
// next display number. The stated owner, when present, must be the principal
// itself; the check is defensive, a well-behaved client never sends anyone
// else.
func (s *TaskService) CreateTask(principal *models.User, input CreateTaskInput) (*models.Task, error) {
	if principal == nil {
		return nil, ErrNotAuthenticated
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.OwnerID != nil && *input.OwnerID != principal.ID {
		return nil, ErrOwnerMismatch
	}

	if input.Status == "" {
		input.Status = models.TaskStatusNew
	} else if !models.ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	if input.Visibility == "" {
		input.Visibility = models.VisibilityPublic
	} else if input.Visibility != models.VisibilityPublic && input.Visibility != models.VisibilityPrivate {
		return nil, ErrInvalidVisibility
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Visibility:  input.Visibility,
	}

	// Owner id and denormalized owner name are written together: both set
	// or both null.
	if input.OwnerID != nil {
		ownerID := *input.OwnerID
		ownerName := principal.DisplayName
		task.OwnerID = &ownerID
		task.OwnerName = &ownerName
	}

	if err := s.taskRepo.CreateWithNumber(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.hub.Publish(subscription.TopicTasks)

	return task, nil
}

// GetTask returns a task by display number. Private tasks resolve as not
// found for anyone but their owner, so existence is not leaked.
func (s *TaskService) GetTask(number uint64, viewerID *uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByNumber(number, "Owner")
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

// UpdateTaskInput represents a partial update; nil fields are untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Visibility  *models.TaskVisibility
}

// UpdateTask applies a partial update to a task. Ownership is re-verified
// here, not only in the UI layer, so a client that bypasses the edit form
// still cannot modify someone else's task.
func (s *TaskService) UpdateTask(number uint64, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByNumber(number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.OwnerID == nil || *task.OwnerID != actorID {
		return nil, ErrNotTaskOwner
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Visibility != nil {
		if *input.Visibility != models.VisibilityPublic && *input.Visibility != models.VisibilityPrivate {
			return nil, ErrInvalidVisibility
		}
		task.Visibility = *input.Visibility
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.hub.Publish(subscription.TopicTasks)
	s.hub.Publish(subscription.TopicTask(task.Number))

	return task, nil
}

// ListTasksInput represents the query parameters of a task list page.
type ListTasksInput struct {
	Statuses []models.TaskStatus
	Owners   []models.OwnerCategory
	ViewerID *uint64
	SortKey  models.SortKey
	Desc     bool
	Limit    int
	Cursor   string
}

// TaskPage is one delivered page plus its continuation state.
type TaskPage struct {
	Tasks          []models.Task
	ContinueCursor string
	IsDone         bool
}

// ListTasks returns a filtered, sorted page of tasks with an opaque
// continuation cursor. Calling again with the same cursor yields the same
// page; the keyset boundary makes pagination stable while new tasks are
// appended concurrently.
func (s *TaskService) ListTasks(input ListTasksInput) (*TaskPage, error) {
	if input.SortKey == "" {
		input.SortKey = models.SortByNumber
	} else if !models.ValidSortKey(input.SortKey) {
		return nil, ErrInvalidSortKey
	}

	for _, st := range input.Statuses {
		if !models.ValidStatus(st) {
			return nil, ErrInvalidFilter
		}
	}
	for _, oc := range input.Owners {
		if !models.ValidOwnerCategory(oc) {
			return nil, ErrInvalidFilter
		}
	}

	limit := input.Limit
	if limit < constants.MinPageSize {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	filter := repository.TaskFilter{
		Statuses: input.Statuses,
		Owners:   input.Owners,
		ViewerID: input.ViewerID,
		SortKey:  input.SortKey,
		Desc:     input.Desc,
		Limit:    limit,
	}

	if input.Cursor != "" {
		pos, err := cursor.Decode(input.Cursor, string(input.SortKey))
		if err != nil {
			return nil, ErrInvalidCursor
		}
		filter.After = &pos
	}

	tasks, hasMore, err := s.taskRepo.ListPage(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	page := &TaskPage{
		Tasks:  tasks,
		IsDone: !hasMore,
	}

	if hasMore {
		last := tasks[len(tasks)-1]
		page.ContinueCursor = cursor.Encode(cursor.Position{
			SortKey:   string(input.SortKey),
			SortValue: repository.SortValue(last, input.SortKey),
			Number:    last.Number,
		})
	}

	return page, nil
}

// taskVisibleTo reports whether a viewer may see a task.
func taskVisibleTo(task *models.Task, viewerID *uint64) bool {
	if task.Visibility == models.VisibilityPublic {
		return true
	}
	return viewerID != nil && task.OwnerID != nil && *task.OwnerID == *viewerID
}
