package router

import (
	"net/http"

	"cronograma/controllers"
	"cronograma/models"

	"github.com/gin-gonic/gin"
)

// Adminizer libera a rota apenas para usuários com role Admin.
func Adminizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario, ok := controllers.GetUserLogged(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if usuario.Role != models.ROLE_ADMIN {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso restrito a administradores"})
			return
		}
		c.Next()
	}
}
