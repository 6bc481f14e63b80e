package handler

import (
	"errors"
	"path/filepath"
	"strings"

	"viewtube/internal/api/dto"
	"viewtube/internal/api/middleware"
	"viewtube/internal/api/response"
	"viewtube/internal/query"
	"viewtube/internal/service"
	"viewtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxVideoSize = 500 * 1024 * 1024 // 500MB

var allowedVideoExts = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true,
	".mkv": true, ".flv": true, ".webm": true,
}

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// List GET /api/v1/videos
func (h *VideoHandler) List(c *gin.Context) {
	data, err := h.videoService.List(parseListParams(c))
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "videos", data)
}

// Get GET /api/v1/videos/:id
func (h *VideoHandler) Get(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)

	detail, err := h.videoService.GetForViewing(c.Request.Context(), videoID, viewerID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "video", detail)
}

// Publish POST /api/v1/videos
func (h *VideoHandler) Publish(c *gin.Context) {
	var req dto.VideoUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	file, err := c.FormFile("video")
	if err != nil {
		response.BadRequest(c, "video file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedVideoExts[ext] {
		response.BadRequest(c, "unsupported video format, allowed: mp4, avi, mov, mkv, flv, webm")
		return
	}
	if file.Size == 0 || file.Size > maxVideoSize {
		response.BadRequest(c, "invalid file size (must be non-empty, at most 500MB)")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, "failed to open uploaded file")
		return
	}
	defer f.Close()

	videoUpload := service.Upload{
		Reader:      f,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
		Filename:    file.Filename,
	}

	var thumbUpload *service.Upload
	if thumb, err := c.FormFile("thumbnail"); err == nil {
		thumbExt := strings.ToLower(filepath.Ext(thumb.Filename))
		if !allowedImageExts[thumbExt] {
			response.BadRequest(c, "unsupported thumbnail format, allowed: jpg, jpeg, png, webp")
			return
		}
		tf, err := thumb.Open()
		if err != nil {
			response.InternalError(c, "failed to open uploaded thumbnail")
			return
		}
		defer tf.Close()
		thumbUpload = &service.Upload{
			Reader:      tf,
			Size:        thumb.Size,
			ContentType: thumb.Header.Get("Content-Type"),
			Filename:    thumb.Filename,
		}
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Publish(c.Request.Context(), currentUserID, &req, videoUpload, thumbUpload)
	if err != nil {
		logger.Error("Publish video failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "failed to publish video")
		return
	}

	response.Created(c, "video published", info)
}

// Update PATCH /api/v1/videos/:id
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Update(c.Request.Context(), videoID, currentUserID, &req)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "video updated", info)
}

// TogglePublish PATCH /api/v1/videos/:id/toggle-publish
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.videoService.TogglePublish(c.Request.Context(), videoID, currentUserID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "publish state toggled", data)
}

// Delete DELETE /api/v1/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.videoService.Delete(c.Request.Context(), videoID, currentUserID); err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "video deleted", nil)
}

// ListByChannel GET /api/v1/users/:id/videos
func (h *VideoHandler) ListByChannel(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.videoService.ListByChannel(channelID, viewerID, page, limit)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "channel videos", data)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotVideoOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, query.ErrInvalidOwnerID),
		errors.Is(err, query.ErrInvalidSortField):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrCascadeIncomplete):
		// The message names the failed cascade steps so the caller
		// knows the delete must be retried.
		logger.Error("Video delete incomplete", zap.Error(err))
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "internal error")
	}
}
