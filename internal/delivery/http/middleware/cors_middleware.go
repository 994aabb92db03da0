package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Header values sent on every response, preflight included
const (
	CORSAllowOrigin  = "*"
	CORSAllowHeaders = "authorization, x-client-info, apikey, content-type"
	CORSAllowMethods = "POST, OPTIONS"
)

// CORSMiddleware adds permissive CORS headers so the contact form can call
// the endpoint from any origin. Preflight requests end here with 204.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", CORSAllowOrigin)
		c.Header("Access-Control-Allow-Headers", CORSAllowHeaders)
		c.Header("Access-Control-Allow-Methods", CORSAllowMethods)
		c.Header("Access-Control-Max-Age", "86400") // 24 hours

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
