package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamInt lê um parâmetro de rota como inteiro; responde 400 se inválido.
func ParamInt(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n < 0 {
		RespondError(c, "parâmetro "+name+" inválido", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}
