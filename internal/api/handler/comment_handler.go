package handler

import (
	"errors"

	"viewtube/internal/api/dto"
	"viewtube/internal/api/middleware"
	"viewtube/internal/api/response"
	"viewtube/internal/service"
	"viewtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListByVideo GET /api/v1/videos/:id/comments
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	page, limit := parsePagination(c)

	data, err := h.commentService.ListByVideo(videoID, page, limit)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "comments", data)
}

// Create POST /api/v1/videos/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.Create(videoID, currentUserID, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "comment added", info)
}

// Update PATCH /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid comment id")
		return
	}

	var req dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.Update(commentID, currentUserID, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "comment updated", info)
}

// Delete DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid comment id")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.commentService.Delete(commentID, currentUserID); err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "comment deleted", nil)
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotCommentOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrCascadeIncomplete):
		logger.Error("Comment delete incomplete", zap.Error(err))
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "internal error")
	}
}
