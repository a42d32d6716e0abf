package router

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger registra método, rota, status e duração de cada requisição.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()
		log.Printf("%s %s -> %d (%s)",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(inicio))
	}
}
