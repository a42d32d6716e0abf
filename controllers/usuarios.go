package controllers

import (
	"net/http"
	"time"

	dbpkg "cronograma/db"
	"cronograma/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UsuarioResumo é o que a listagem pública (autenticada) expõe de um
// usuário: o suficiente para escolher com quem compartilhar.
type UsuarioResumo struct {
	ID          uuid.UUID  `json:"id"`
	Nome        string     `json:"nome"`
	Email       string     `json:"email"`
	Empresa     string     `json:"empresa"`
	DataCriacao *time.Time `json:"data_criacao"`
}

func resumoDe(u models.Usuario) UsuarioResumo {
	return UsuarioResumo{
		ID:          u.ID,
		Nome:        u.Nome,
		Email:       u.Email,
		Empresa:     u.Empresa,
		DataCriacao: u.DataCriacao,
	}
}

// GET /api/usuarios
func GetUsuarios(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var usuarios []models.Usuario
	if err := db.Order("nome asc").Find(&usuarios).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	resumos := make([]UsuarioResumo, 0, len(usuarios))
	for _, u := range usuarios {
		resumos = append(resumos, resumoDe(u))
	}
	RespondSuccess(c, gin.H{"usuarios": resumos})
}

// GET /api/usuarios/:id
func GetUsuarioByID(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var usuario models.Usuario
	if err := db.Where("id = ?", id).First(&usuario).Error; err != nil {
		RespondError(c, "usuário não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"usuario": resumoDe(usuario)})
}
