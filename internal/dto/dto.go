package dto

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// TaskDTO represents a task in API responses. Number is the public
// identifier used in routes and cursors.
type TaskDTO struct {
	Number       uint64                `json:"number"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Status       models.TaskStatus     `json:"status"`
	Visibility   models.TaskVisibility `json:"visibility"`
	OwnerID      *uint64               `json:"owner_id"`
	OwnerName    *string               `json:"owner_name"`
	CommentCount int64                 `json:"comment_count"`
	FileCount    int64                 `json:"file_count"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	Owner        *UserDTO              `json:"owner,omitempty"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID         uint64    `json:"id"`
	AuthorID   uint64    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// FileDTO represents attachment metadata in API responses
type FileDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	StorageID   string    `json:"storage_id"`
	AuthorID    uint64    `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskListResponse is one page of the task list plus continuation state.
type TaskListResponse struct {
	Tasks          []TaskDTO `json:"tasks"`
	ContinueCursor string    `json:"continue_cursor,omitempty"`
	IsDone         bool      `json:"is_done"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		Number:       task.Number,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Visibility:   task.Visibility,
		OwnerID:      task.OwnerID,
		OwnerName:    task.OwnerName,
		CommentCount: task.CommentCount,
		FileCount:    task.FileCount,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include owner if preloaded
	if task.Owner != nil && task.Owner.ID != 0 {
		owner := ToUserDTO(*task.Owner)
		dto.Owner = &owner
	}

	return dto
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:         comment.ID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		Body:       comment.Body,
		CreatedAt:  comment.CreatedAt,
	}
}

// ToFileDTO converts a TaskFile model to FileDTO
func ToFileDTO(file models.TaskFile) FileDTO {
	return FileDTO{
		ID:          file.ID,
		Name:        file.Name,
		ContentType: file.ContentType,
		StorageID:   file.StorageID,
		AuthorID:    file.AuthorID,
		CreatedAt:   file.CreatedAt,
	}
}

// ToTaskListResponse converts a page of tasks to the list response shape.
func ToTaskListResponse(tasks []models.Task, continueCursor string, isDone bool) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:          items,
		ContinueCursor: continueCursor,
		IsDone:         isDone,
	}
}
