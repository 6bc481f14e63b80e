package handler

import (
	"strconv"

	"viewtube/internal/query"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive int64 path parameter.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parsePagination reads page and limit, falling back to defaults for
// anything missing or malformed.
func parsePagination(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = query.DefaultPage
	}
	limit, err = strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = query.DefaultLimit
	}
	if limit > query.MaxLimit {
		limit = query.MaxLimit
	}
	return page, limit
}

// parseListParams collects the raw list query parameters; validation and
// coercion happen in the query package.
func parseListParams(c *gin.Context) query.RawListParams {
	return query.RawListParams{
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		OwnerID:  c.Query("userId"),
	}
}
