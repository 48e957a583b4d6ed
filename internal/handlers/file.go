package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/services"
)

type FileHandler struct {
	fileService *services.FileService
	authService *services.AuthService
}

func NewFileHandler(fileService *services.FileService, authService *services.AuthService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		authService: authService,
	}
}

// SaveFile records attachment metadata on a task and bumps its file count.
func (h *FileHandler) SaveFile(c *gin.Context) {
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

	type SaveFileRequest struct {
		Name        string `json:"name" binding:"required"`
		ContentType string `json:"content_type" binding:"required"`
	}

	var req SaveFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	file, err := h.fileService.SaveFile(principal, number, services.SaveFileInput{
		Name:        req.Name,
		ContentType: req.ContentType,
	})
	if err != nil {
		respondFileError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFileDTO(*file))
}

// DeleteFile removes attachment metadata and decrements the task's file
// count.
func (h *FileHandler) DeleteFile(c *gin.Context) {
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

	fileID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid file ID")
		return
	}

	if err := h.fileService.DeleteFile(principal, number, fileID); err != nil {
		respondFileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File deleted successfully",
	})
}

// GetSafeFiles returns the attachment allow-list.
func (h *FileHandler) GetSafeFiles(c *gin.Context) {
	safeFiles, err := h.fileService.SafeFiles()
	if err != nil {
		apierrors.InternalError(c, "Failed to load safe files")
		return
	}

	c.JSON(http.StatusOK, gin.H{"safe_files": safeFiles})
}

func respondFileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrNotFileOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrFileNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFileNameRequired),
		errors.Is(err, services.ErrFileTypeNotAllowed):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
