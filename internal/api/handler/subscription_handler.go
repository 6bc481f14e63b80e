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

type SubscriptionHandler struct {
	subService *service.SubscriptionService
}

func NewSubscriptionHandler(subService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

// Toggle POST /api/v1/subscriptions/channel/:id
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid channel id")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.subService.Toggle(currentUserID, channelID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "subscription toggled", data)
}

// ListSubscribers GET /api/v1/subscriptions/channel/:id/subscribers
func (h *SubscriptionHandler) ListSubscribers(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid channel id")
		return
	}

	page, limit := parsePagination(c)

	data, err := h.subService.ListSubscribers(channelID, page, limit)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "subscribers", data)
}

// ListSubscribedChannels GET /api/v1/subscriptions/me
func (h *SubscriptionHandler) ListSubscribedChannels(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.subService.ListSubscribedChannels(currentUserID, page, limit)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "subscribed channels", data)
}

func handleSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChannelNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCannotSubscribeSelf):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrSubscriptionConflict):
		response.Conflict(c, err.Error())
	default:
		logger.Error("Subscription operation failed", zap.Error(err))
		response.InternalError(c, "internal error")
	}
}
