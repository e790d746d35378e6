package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/category-task-api/internal/errors"
	"github.com/yukikurage/category-task-api/internal/services"
)

// statusClientClosedRequest is the nginx convention for a request the client
// abandoned before a response was written.
const statusClientClosedRequest = 499

// respondUnexpected maps errors no domain rule claimed. Exhausted request
// budgets become 504, everything else 500 with the cause logged, not returned.
func respondUnexpected(c *gin.Context, err error) {
	if services.IsTimeout(err) {
		apierrors.Timeout(c, "")
		return
	}

	if services.IsCanceled(err) {
		slog.DebugContext(c.Request.Context(), "client closed request",
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
		)
		c.AbortWithStatus(statusClientClosedRequest)
		return
	}

	slog.ErrorContext(c.Request.Context(), "request failed",
		slog.String("method", c.Request.Method),
		slog.String("route", c.FullPath()),
		slog.String("error", err.Error()),
	)
	apierrors.InternalError(c, "")
}
