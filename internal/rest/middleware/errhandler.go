package middleware

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
)

// ErrorHandler turns errors attached to the gin context into the standard
// error response, with the status derived from the error's mark.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
		}
	}
}
