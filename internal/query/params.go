// Package query turns untrusted list-request parameters into a validated
// pipeline (match, sort, window) and computes pagination metadata over the
// counted result set.
package query

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrInvalidOwnerID   = errors.New("invalid owner id")
	ErrInvalidSortField = errors.New("unknown sort field")
)

// RawListParams are request-level values before any validation.
type RawListParams struct {
	Page     string
	Limit    string
	Query    string
	SortBy   string
	SortType string
	OwnerID  string
}

// Resource describes how a collection is searched and sorted: which
// columns free text matches against, which column holds the owner
// reference, and the allow-list mapping request sort fields to columns.
type Resource struct {
	SearchColumns []string
	OwnerColumn   string
	SortColumns   map[string]string
}

// Videos is the query surface of the videos collection.
var Videos = Resource{
	SearchColumns: []string{"title", "description"},
	OwnerColumn:   "owner_id",
	SortColumns: map[string]string{
		"createdAt": "created_at",
		"views":     "view_count",
		"duration":  "duration",
		"title":     "title",
	},
}

// Users is the query surface of the users collection.
var Users = Resource{
	SearchColumns: []string{"user_name", "full_name"},
	OwnerColumn:   "id",
	SortColumns: map[string]string{
		"createdAt": "created_at",
		"username":  "user_name",
	},
}

// Pipeline is a validated, side-effect-free query specification.
type Pipeline struct {
	Search        string
	SearchColumns []string
	OwnerColumn   string
	OwnerID       *int64
	OrderExpr     string // empty means natural store order
	Page          int
	Limit         int
}

// Build validates raw parameters against a resource and produces the
// pipeline. Page and limit are coerced to sane positive values; a
// malformed owner id or an unlisted sort field is rejected rather than
// silently matching nothing.
func Build(raw RawListParams, res Resource) (Pipeline, error) {
	p := Pipeline{
		Search:        strings.TrimSpace(raw.Query),
		SearchColumns: res.SearchColumns,
		OwnerColumn:   res.OwnerColumn,
		Page:          coercePositive(raw.Page, DefaultPage),
		Limit:         coercePositive(raw.Limit, DefaultLimit),
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if raw.OwnerID != "" {
		id, err := strconv.ParseInt(raw.OwnerID, 10, 64)
		if err != nil || id <= 0 {
			return Pipeline{}, ErrInvalidOwnerID
		}
		p.OwnerID = &id
	}

	// Sort takes effect only when both field and direction are present.
	if raw.SortBy != "" && raw.SortType != "" {
		column, ok := res.SortColumns[raw.SortBy]
		if !ok {
			return Pipeline{}, ErrInvalidSortField
		}
		dir := "ASC"
		if raw.SortType == "desc" {
			dir = "DESC"
		}
		// id as secondary key keeps the order stable across pages.
		p.OrderExpr = column + " " + dir + ", id " + dir
	}

	return p, nil
}

func coercePositive(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Offset returns the document offset of the requested window.
func (p Pipeline) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Match applies the free-text and owner predicates. Free text is a
// case-insensitive substring match over the resource's search columns.
func (p Pipeline) Match(db *gorm.DB) *gorm.DB {
	if p.Search != "" && len(p.SearchColumns) > 0 {
		pattern := "%" + p.Search + "%"
		conds := make([]string, 0, len(p.SearchColumns))
		args := make([]interface{}, 0, len(p.SearchColumns))
		for _, col := range p.SearchColumns {
			conds = append(conds, col+" ILIKE ?")
			args = append(args, pattern)
		}
		db = db.Where(strings.Join(conds, " OR "), args...)
	}
	if p.OwnerID != nil {
		db = db.Where(p.OwnerColumn+" = ?", *p.OwnerID)
	}
	return db
}

// Order applies the sort key, if any.
func (p Pipeline) Order(db *gorm.DB) *gorm.DB {
	if p.OrderExpr != "" {
		db = db.Order(p.OrderExpr)
	}
	return db
}

// Window applies offset/limit. Offset pagination can skip or repeat rows
// when the underlying set mutates between pages; callers accept that.
func (p Pipeline) Window(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Limit)
}
