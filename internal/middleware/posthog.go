package middleware

import (
	"net/http"

	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware records one api_request event per successful authenticated request.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest || c.FullPath() == "" {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		posthogClient.Enqueue(userID, utils.EventAPIRequest, map[string]any{
			"route":       c.FullPath(),
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		})
	}
}

// PosthogEvent sends a custom event for the authenticated user of c.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["route"] = c.FullPath()
	posthogClient.Enqueue(userID, eventName, properties)
}
