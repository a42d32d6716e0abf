package controllers

import (
	"net/http"

	"cronograma/access"
	"cronograma/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var tokenService *auth.TokenService

// SetTokenService injeta o serviço de tokens montado no main.
func SetTokenService(ts *auth.TokenService) {
	tokenService = ts
}

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}

// ParamUUID lê um parâmetro de rota como UUID; responde 400 se inválido.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, "parâmetro "+name+" inválido", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// RespondAccessError traduz as falhas do pacote access para HTTP.
func RespondAccessError(c *gin.Context, err error) {
	switch err {
	case access.ErrNotFound:
		RespondError(c, err.Error(), http.StatusNotFound)
	case access.ErrForbidden:
		RespondError(c, err.Error(), http.StatusForbidden)
	default:
		RespondError(c, err.Error(), http.StatusBadRequest)
	}
}
