package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// storeFailure translates store-layer errors without leaking internals.
// A timed-out operation is retryable, everything else is a plain 500.
func storeFailure(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Store temporarily unavailable, please retry",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Unexpected store failure",
	})
}
