package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

// BindJSON binds and validates the request body, translating validator
// failures into a 400 with per-field details.
func BindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return ValidationError(err)
	}
	return nil
}

// Pagination reads page/limit query parameters, clamping them to sane values.
func Pagination(c *gin.Context) types.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit < 1 {
		limit = types.DefaultPageSize
	}
	if limit > types.MaxPageSize {
		limit = types.MaxPageSize
	}
	return types.Pagination{Page: page, Limit: limit}
}

// QueryTime parses an optional RFC3339 or YYYY-MM-DD query parameter.
func QueryTime(c *gin.Context, key string, loc *time.Location) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return nil, BadRequest("%s must be RFC3339 or YYYY-MM-DD", key)
	}
	return &t, nil
}
