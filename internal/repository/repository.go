package repository

import (
	"github.com/taskboard/taskboard-api/internal/cursor"
	"github.com/taskboard/taskboard-api/internal/models"
)

// TaskFilter holds the filter, sort and continuation parameters for a task
// list page. Empty Statuses or Owners means "match nothing", not "match
// everything". ViewerID is the authenticated viewer, nil when anonymous; it
// resolves the "mine"/"others" owner categories and private-task visibility.
type TaskFilter struct {
	Statuses []models.TaskStatus
	Owners   []models.OwnerCategory
	ViewerID *uint64
	SortKey  models.SortKey
	Desc     bool
	Limit    int
	After    *cursor.Position
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithNumber creates a task, assigning the next display number
	// atomically with the insert.
	CreateWithNumber(task *models.Task) error

	// FindByNumber finds a task by display number with optional preloading
	FindByNumber(number uint64, preload ...string) (*models.Task, error)

	// ListPage retrieves one page of tasks matching the filter. The second
	// result reports whether more rows exist past the page.
	ListPage(filter TaskFilter) ([]models.Task, bool, error)

	// Update persists changes to a task
	Update(task *models.Task) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update persists profile changes
	Update(user *models.User) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// AppendToTask inserts a comment and bumps the parent task's comment
	// count in the same transaction.
	AppendToTask(comment *models.Comment) error

	// ListByTask returns all comments of a task ordered by creation time
	ListByTask(taskID uint64) ([]models.Comment, error)
}

// FileRepository defines the interface for task file metadata access
type FileRepository interface {
	// CreateWithCount inserts file metadata and bumps the parent task's file
	// count in the same transaction.
	CreateWithCount(file *models.TaskFile) error

	// DeleteWithCount removes file metadata and decrements the parent task's
	// file count in the same transaction.
	DeleteWithCount(file *models.TaskFile) error

	// FindByID finds a file record by ID
	FindByID(id uint64) (*models.TaskFile, error)

	// ListSafeFiles returns the attachment allow-list
	ListSafeFiles() ([]models.SafeFile, error)
}
