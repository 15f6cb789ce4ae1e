package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/types"
)

// Paginator reads page/limit query parameters and builds page links
type Paginator struct {
	DefaultLimit int
	MaxLimit     int
	// PublicURL overrides scheme and host of generated links, e.g. behind a proxy
	PublicURL string
}

// Query parses page and limit. limit is capped at MaxLimit.
func (p Paginator) Query(c *gin.Context) (types.PageQuery, error) {
	q := types.PageQuery{Page: 1, Limit: p.DefaultLimit}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return q, apperr.InvalidField("page", "must be a positive integer")
		}
		q.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return q, apperr.InvalidField("limit", "must be a positive integer")
		}
		q.Limit = limit
	}
	if p.MaxLimit > 0 && q.Limit > p.MaxLimit {
		q.Limit = p.MaxLimit
	}
	return q, nil
}

// pageURL rebuilds the current request URL with another page number,
// keeping every other query parameter.
func (p Paginator) pageURL(c *gin.Context, page, limit int) string {
	base := p.PublicURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}

	values := url.Values{}
	for k, v := range c.Request.URL.Query() {
		values[k] = v
	}
	values.Set("page", strconv.Itoa(page))
	values.Set("limit", strconv.Itoa(limit))
	return strings.TrimRight(base, "/") + c.Request.URL.Path + "?" + values.Encode()
}

// NewPage wraps results with the total count and neighbour links
func NewPage[T any](c *gin.Context, p Paginator, q types.PageQuery, total int64, results []T) types.Page[T] {
	if results == nil {
		results = []T{}
	}
	page := types.Page[T]{Count: total, Results: results}

	if int64(q.Page)*int64(q.Limit) < total {
		next := p.pageURL(c, q.Page+1, q.Limit)
		page.Next = &next
	}
	if q.Page > 1 {
		prev := p.pageURL(c, q.Page-1, q.Limit)
		page.Previous = &prev
	}
	return page
}
