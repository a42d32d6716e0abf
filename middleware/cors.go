package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware libera apenas as origens configuradas (por padrão os
// hosts locais do frontend).
func CORSMiddleware(origens []string) gin.HandlerFunc {
	permitidas := make(map[string]bool, len(origens))
	for _, o := range origens {
		permitidas[o] = true
	}

	return func(c *gin.Context) {
		origem := c.Request.Header.Get("Origin")
		if permitidas[origem] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origem)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
