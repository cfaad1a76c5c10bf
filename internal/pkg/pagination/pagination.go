package pagination

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	// DefaultLimit is the page size when limit is omitted
	DefaultLimit = 20
	// MaxLimit caps the page size
	MaxLimit = 100
	// MaxPage caps the page number so the offset always fits in an int32
	MaxPage = 1 << 24
)

// Params is a parsed page request
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Meta describes the position of a page in the full listing
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Page is one page of items with its metadata
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// GetParams reads ?page= and ?limit=. Non-numeric values are an error,
// out of range values are clamped.
func GetParams(c *fiber.Ctx) (Params, error) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return Params{}, err
	}
	limit, err := queryInt(c, "limit", DefaultLimit)
	if err != nil {
		return Params{}, err
	}
	return NewParams(page, limit), nil
}

// NewParams clamps page and limit and derives the offset
func NewParams(page, limit int) Params {
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// NewPage wraps a listing result
func NewPage[T any](items []T, params Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	return Page[T]{
		Items: items,
		Meta: Meta{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    params.Page < totalPages,
			HasPrev:    params.Page > 1,
		},
	}
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}
