package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/apperr"
)

// pathID parses the :id segment. A malformed id cannot name anything, so it
// is reported as not found.
func pathID(c *gin.Context, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.NotFound(what + " not found")
	}
	return id, nil
}

// queryFlag reads boolean filters written as 1/0 or true/false.
func queryFlag(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.InvalidField(name, "must be 0 or 1")
	}
	return v, nil
}

// recipesLimit reads recipes_limit; -1 means no limit.
func recipesLimit(c *gin.Context) (int, error) {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.InvalidField("recipes_limit", "must be a non-negative integer")
	}
	return n, nil
}
