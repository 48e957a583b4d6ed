package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
	authService    *services.AuthService
}

func NewCommentHandler(commentService *services.CommentService, authService *services.AuthService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		authService:    authService,
	}
}

// ListComments returns a task's comments ordered by creation time.
func (h *CommentHandler) ListComments(c *gin.Context) {
	number, ok := parseTaskNumber(c)
	if !ok {
		return
	}

	comments, err := h.commentService.List(number, middleware.ViewerID(c))
	if err != nil {
		respondCommentError(c, err)
		return
	}

	items := make([]dto.CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = dto.ToCommentDTO(comment)
	}

	c.JSON(http.StatusOK, gin.H{"comments": items})
}

// SaveComment appends a comment and bumps the task's comment count.
func (h *CommentHandler) SaveComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	principal, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	number, ok := parseTaskNumber(c)
	if !ok {
		return
	}

	type SaveCommentRequest struct {
		Body string `json:"body" binding:"required"`
	}

	var req SaveCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.Append(principal, number, req.Body)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCommentBodyEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
