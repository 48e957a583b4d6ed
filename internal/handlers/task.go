package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/services"
	"github.com/taskboard/taskboard-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
	authService *services.AuthService
}

func NewTaskHandler(taskService *services.TaskService, authService *services.AuthService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		authService: authService,
	}
}

// ListTasks returns one filtered, sorted page of tasks with a continuation
// cursor. Public route; the viewer, when present, resolves "mine"/"others"
// and private-task visibility.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetListParams(c)

	page, err := h.taskService.ListTasks(services.ListTasksInput{
		Statuses: params.Statuses,
		Owners:   params.Owners,
		ViewerID: middleware.ViewerID(c),
		SortKey:  params.SortKey,
		Desc:     params.Desc,
		Limit:    params.Limit,
		Cursor:   params.Cursor,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(page.Tasks, page.ContinueCursor, page.IsDone))
}

// GetTask returns one task by display number.
func (h *TaskHandler) GetTask(c *gin.Context) {
	number, ok := parseTaskNumber(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(number, middleware.ViewerID(c))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task, assigning the next display number.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	principal, ok := h.requirePrincipal(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string                `json:"title" binding:"required"`
		Description string                `json:"description"`
		Status      models.TaskStatus     `json:"status"`
		Visibility  models.TaskVisibility `json:"visibility"`
		OwnerID     *uint64               `json:"owner_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(principal, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Visibility:  req.Visibility,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task the principal owns.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	principal, ok := h.requirePrincipal(c)
	if !ok {
		return
	}

	number, ok := parseTaskNumber(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string                `json:"title"`
		Description *string                `json:"description"`
		Status      *models.TaskStatus     `json:"status"`
		Visibility  *models.TaskVisibility `json:"visibility"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(number, principal.ID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Visibility:  req.Visibility,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// requirePrincipal resolves the session user record, failing the request
// when there is none.
func (h *TaskHandler) requirePrincipal(c *gin.Context) (*models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	principal, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return nil, false
	}

	return principal, true
}

func parseTaskNumber(c *gin.Context) (uint64, bool) {
	number, err := strconv.ParseUint(c.Param("number"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task number")
		return 0, false
	}
	return number, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrOwnerMismatch):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidVisibility),
		errors.Is(err, services.ErrInvalidSortKey),
		errors.Is(err, services.ErrInvalidFilter),
		errors.Is(err, services.ErrInvalidCursor):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
