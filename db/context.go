package db

import (
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// Chave sob a qual o handle do gorm fica no contexto de cada request.
const dbKey = "db"

// SetDBtoContext registra o banco no contexto gin; deve ser o primeiro
// middleware da cadeia, antes do router.
func SetDBtoContext(database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, database)
		c.Next()
	}
}

// DBInstance recupera o banco registrado pelo SetDBtoContext.
// Retorna nil se o middleware não foi instalado.
func DBInstance(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(dbKey); ok {
		if database, ok := v.(*gorm.DB); ok {
			return database
		}
	}
	return nil
}
