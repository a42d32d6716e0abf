package router

import (
	"net/http"

	"cronograma/controllers"

	"github.com/gin-gonic/gin"
)

// Authorizer barra usuários desativados mesmo com token ainda válido.
func Authorizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario, ok := controllers.GetUserLogged(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !usuario.Ativo {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Usuário desativado"})
			return
		}
		c.Next()
	}
}
