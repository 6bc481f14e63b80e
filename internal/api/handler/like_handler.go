package handler

import (
	"errors"

	"viewtube/internal/api/middleware"
	"viewtube/internal/api/response"
	"viewtube/internal/service"
	"viewtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideoLike POST /api/v1/likes/toggle/video/:id
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.likeService.ToggleVideoLike(currentUserID, videoID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "like toggled", data)
}

// ToggleCommentLike POST /api/v1/likes/toggle/comment/:id
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid comment id")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.likeService.ToggleCommentLike(currentUserID, commentID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "like toggled", data)
}

// ToggleTweetLike POST /api/v1/likes/toggle/tweet/:id
func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid tweet id")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.likeService.ToggleTweetLike(currentUserID, tweetID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "like toggled", data)
}

// GetVideoLikeCount GET /api/v1/likes/video/:id
func (h *LikeHandler) GetVideoLikeCount(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	data, err := h.likeService.VideoLikeCount(videoID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "like count", data)
}

// GetCommentLikeCount GET /api/v1/likes/comment/:id
func (h *LikeHandler) GetCommentLikeCount(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid comment id")
		return
	}

	data, err := h.likeService.CommentLikeCount(commentID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "like count", data)
}

// GetTweetLikeCount GET /api/v1/likes/tweet/:id
func (h *LikeHandler) GetTweetLikeCount(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid tweet id")
		return
	}

	data, err := h.likeService.TweetLikeCount(tweetID)
	if err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "like count", data)
}

// GetLikedVideos GET /api/v1/likes/videos
func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.likeService.GetLikedVideos(currentUserID, page, limit)
	if err != nil {
		logger.Error("Get liked videos failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "failed to get liked videos")
		return
	}

	response.OK(c, "liked videos", data)
}

func handleLikeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrTweetNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrLikeConflict):
		response.Conflict(c, err.Error())
	default:
		logger.Error("Like operation failed", zap.Error(err))
		response.InternalError(c, "internal error")
	}
}
