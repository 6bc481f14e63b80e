package handler

import (
	"errors"
	"path/filepath"
	"strings"

	"viewtube/internal/api/dto"
	"viewtube/internal/api/middleware"
	"viewtube/internal/api/response"
	"viewtube/internal/service"
	"viewtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create POST /api/v1/tweets
func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.TweetCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	var image *service.Upload
	if file, err := c.FormFile("image"); err == nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExts[ext] {
			response.BadRequest(c, "unsupported image format, allowed: jpg, jpeg, png, webp")
			return
		}
		f, err := file.Open()
		if err != nil {
			response.InternalError(c, "failed to open uploaded image")
			return
		}
		defer f.Close()
		image = &service.Upload{
			Reader:      f,
			Size:        file.Size,
			ContentType: file.Header.Get("Content-Type"),
			Filename:    file.Filename,
		}
	}

	info, err := h.tweetService.Create(c.Request.Context(), currentUserID, &req, image)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.Created(c, "tweet posted", info)
}

// ListByUser GET /api/v1/tweets/user/:id
func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	page, limit := parsePagination(c)

	data, err := h.tweetService.ListByOwner(userID, page, limit)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "tweets", data)
}

// Update PATCH /api/v1/tweets/:id
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid tweet id")
		return
	}

	var req dto.TweetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.tweetService.Update(tweetID, currentUserID, &req)
	if err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "tweet updated", info)
}

// Delete DELETE /api/v1/tweets/:id
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid tweet id")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.tweetService.Delete(c.Request.Context(), tweetID, currentUserID); err != nil {
		handleTweetError(c, err)
		return
	}

	response.OK(c, "tweet deleted", nil)
}

func handleTweetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTweetNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotTweetOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrCascadeIncomplete):
		logger.Error("Tweet delete incomplete", zap.Error(err))
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Tweet operation failed", zap.Error(err))
		response.InternalError(c, "internal error")
	}
}
