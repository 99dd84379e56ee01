package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homeservices/site/pkg/logger"
	"go.uber.org/zap"
)

// MetricsAuthHeader carries the scrape token for the metrics endpoint
const MetricsAuthHeader = "X-Metrics-Token"

// TokenAuthMiddleware requires header to hold one of validTokens.
// With no tokens configured every request passes.
func TokenAuthMiddleware(header string, validTokens ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validTokens) == 0 {
			c.Next()
			return
		}

		token := c.GetHeader(header)
		if token == "" {
			logger.Warn("Missing authentication token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication token"})
			return
		}

		for _, valid := range validTokens {
			if subtle.ConstantTimeCompare([]byte(token), []byte(valid)) == 1 {
				c.Next()
				return
			}
		}

		logger.Warn("Invalid authentication token",
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication token"})
	}
}
