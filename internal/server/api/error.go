package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datawarden/datawarden/internal/objects"
	"github.com/datawarden/datawarden/internal/server/biz"
)

// JSONError returns a JSON error response and adds the error to gin context for access logging.
func JSONError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, objects.ErrorResponse{
		Error: objects.Error{
			Type:    http.StatusText(status),
			Message: err.Error(),
		},
	})
}

// serviceError maps a biz error to the right status code.
func serviceError(c *gin.Context, err error) {
	if _, ok := biz.AsAccessDenied(err); ok {
		JSONError(c, http.StatusForbidden, err)
		return
	}

	JSONError(c, http.StatusInternalServerError, err)
}
