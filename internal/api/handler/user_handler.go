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

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetChannelProfile GET /api/v1/users/:id
func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)

	profile, err := h.userService.GetChannelProfile(userID, viewerID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "channel profile", profile)
}

// UpdateProfile PATCH /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.userService.UpdateProfile(currentUserID, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "profile updated", info)
}

// GetWatchHistory GET /api/v1/users/me/history
func (h *UserHandler) GetWatchHistory(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.userService.GetWatchHistory(currentUserID, page, limit)
	if err != nil {
		logger.Error("Get watch history failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "failed to get watch history")
		return
	}

	response.OK(c, "watch history", data)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "internal error")
	}
}
