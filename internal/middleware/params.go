package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/category-task-api/internal/errors"
)

const idParamKeyPrefix = "param_id:"

// RequireIDParam parses the named path parameter as a positive integer ID.
// Malformed IDs are rejected with 400 before the handler runs.
func RequireIDParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(name), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid "+name)
			return
		}

		c.Set(idParamKeyPrefix+name, id)
		c.Next()
	}
}

// GetIDParam returns the ID parsed by RequireIDParam.
func GetIDParam(c *gin.Context, name string) (uint64, bool) {
	v, ok := c.Get(idParamKeyPrefix + name)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
