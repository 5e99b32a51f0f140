package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware turns panics into a JSON 500
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("API: panic serving %s %s request_id=%s: %v",
			c.Request.Method, c.Request.URL.Path, c.GetString(RequestIDKey), recovered)

		message := "An unexpected error occurred"
		if err, ok := recovered.(string); ok {
			message = err
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":       "INTERNAL_ERROR",
				"message":    message,
				"request_id": c.GetString(RequestIDKey),
			},
		})
	})
}
