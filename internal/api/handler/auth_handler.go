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

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	info, err := h.authService.Register(&req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.Created(c, "registered", info)
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	data, err := h.authService.Login(&req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "logged in", data)
}

// Refresh POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	data, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "token refreshed", data)
}

// Logout POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.authService.Logout(currentUserID); err != nil {
		logger.Error("Logout failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "failed to log out")
		return
	}

	response.OK(c, "logged out", nil)
}

// ChangePassword POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.authService.ChangePassword(currentUserID, &req); err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "password changed", nil)
}

// GetCurrentUser GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.authService.GetCurrentUser(currentUserID)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "current user", info)
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredential),
		errors.Is(err, service.ErrInvalidRefresh):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrMissingCredentials):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Auth operation failed", zap.Error(err))
		response.InternalError(c, "internal error")
	}
}
