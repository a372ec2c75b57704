package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/factuurlijk/factuurlijk/internal/types"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTenantID  = "X-Tenant-ID"
	HeaderUserID    = "X-User-ID"
)

// RequestMiddleware moves the request identity headers onto the request
// context where the services expect them.
func RequestMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}
	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	if tenantID := c.GetHeader(HeaderTenantID); tenantID != "" {
		ctx = types.SetTenantID(ctx, tenantID)
	}
	if userID := c.GetHeader(HeaderUserID); userID != "" {
		ctx = types.SetUserID(ctx, userID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Header(HeaderRequestID, requestID)

	c.Next()
}

// TenantRequired rejects requests that carry no tenant identity. The
// payment webhook route skips this; everything else needs it.
func TenantRequired(c *gin.Context) {
	if err := types.ValidateTenantContext(c.Request.Context()); err != nil {
		c.AbortWithStatusJSON(401, gin.H{"success": false, "error": gin.H{
			"message": "missing tenant identity",
		}})
		return
	}
	c.Next()
}
