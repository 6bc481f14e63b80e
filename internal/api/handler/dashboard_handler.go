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

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	stats, err := h.dashboardService.GetChannelStats(c.Request.Context(), currentUserID)
	if err != nil {
		if errors.Is(err, service.ErrChannelNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Get channel stats failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "failed to get channel stats")
		return
	}

	response.OK(c, "channel stats", stats)
}

// GetVideos GET /api/v1/dashboard/videos
func (h *DashboardHandler) GetVideos(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.dashboardService.GetChannelVideos(currentUserID, page, limit)
	if err != nil {
		logger.Error("Get channel videos failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "failed to get channel videos")
		return
	}

	response.OK(c, "channel videos", data)
}
