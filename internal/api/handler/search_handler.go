package handler

import (
	"strconv"

	"viewtube/internal/api/response"
	"viewtube/internal/service"
	"viewtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search GET /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	q := c.Query("query")
	page, limit := parsePagination(c)

	data, err := h.searchService.Search(c.Request.Context(), q, page, limit)
	if err != nil {
		// Reaching here means the index was down and the database scan
		// failed too.
		logger.Error("Search failed", zap.String("query", q), zap.Error(err))
		response.ServiceUnavailable(c, "search is temporarily unavailable")
		return
	}

	response.OK(c, "search results", data)
}

// Suggest GET /api/v1/search/suggest
func (h *SearchHandler) Suggest(c *gin.Context) {
	prefix := c.Query("prefix")
	limit, _ := strconv.Atoi(c.Query("limit"))

	data, err := h.searchService.Suggest(c.Request.Context(), prefix, limit)
	if err != nil {
		logger.Error("Suggest failed", zap.String("prefix", prefix), zap.Error(err))
		response.InternalError(c, "suggest failed")
		return
	}

	response.OK(c, "suggestions", data)
}
