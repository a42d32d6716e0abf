package controllers

import (
	"net/http"
	"strings"

	"cronograma/auth"
	dbpkg "cronograma/db"
	"cronograma/models"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "auth_user"

// AuthRequired valida o Bearer token e carrega o usuário no contexto.
// O usuário é recarregado do banco a cada request: um token ainda
// válido de conta desativada é rejeitado aqui.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			RespondError(c, "token ausente", http.StatusUnauthorized)
			c.Abort()
			return
		}
		token := strings.TrimSpace(h[len("Bearer "):])

		claims, err := tokenService.Validate(token)
		if err != nil {
			RespondError(c, err.Error(), http.StatusUnauthorized)
			c.Abort()
			return
		}
		usuarioID, err := claims.UsuarioID()
		if err != nil {
			RespondError(c, auth.ErrMalformed.Error(), http.StatusUnauthorized)
			c.Abort()
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
			c.Abort()
			return
		}
		var usuario models.Usuario
		if err := db.Where("id = ?", usuarioID).First(&usuario).Error; err != nil {
			RespondError(c, "usuário não encontrado", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if !usuario.Ativo {
			RespondError(c, auth.ErrInactive.Error(), http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, usuario)
		c.Next()
	}
}

// GetUserLogged retorna o usuário carregado pelo AuthRequired.
func GetUserLogged(c *gin.Context) (models.Usuario, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.Usuario{}, false
	}
	usuario, ok := v.(models.Usuario)
	return usuario, ok
}
