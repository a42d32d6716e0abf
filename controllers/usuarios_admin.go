package controllers

import (
	"net/http"
	"time"

	"cronograma/auth"
	dbpkg "cronograma/db"
	"cronograma/models"
	"cronograma/tools"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CriarUsuarioRequest struct {
	Login   string `json:"login" form:"login"`
	Senha   string `json:"senha" form:"senha"`
	Nome    string `json:"nome" form:"nome"`
	Email   string `json:"email" form:"email"`
	Empresa string `json:"empresa" form:"empresa"`
	Role    string `json:"role" form:"role"`
}

type AtualizarUsuarioRequest struct {
	Nome  string `json:"nome" form:"nome"`
	Email string `json:"email" form:"email"`
	// Ponteiro para distinguir "mandar vazio" (limpa o campo) de
	// "não mandar" (mantém o valor atual).
	Empresa   *string `json:"empresa" form:"empresa"`
	Role      string  `json:"role" form:"role"`
	Ativo     *bool   `json:"ativo" form:"ativo"`
	NovaSenha string  `json:"nova_senha" form:"nova_senha"`
}

// GET /api/auth/usuarios (admin)
func ListarUsuarios(c *gin.Context) {
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
	RespondSuccess(c, gin.H{"usuarios": usuarios})
}

// POST /api/auth/usuarios (admin)
// Diferente do registro público, aqui o admin escolhe a Role.
func CriarUsuario(c *gin.Context) {
	var req CriarUsuarioRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	usuario := models.Usuario{
		Login:   req.Login,
		Nome:    req.Nome,
		Email:   req.Email,
		Empresa: req.Empresa,
	}
	if missing := usuario.MissingFields(); missing != "" {
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}
	if req.Senha == "" || tools.CheckPassword(req.Senha) != "" {
		RespondError(c, "Faltando campo senha", http.StatusBadRequest)
		return
	}
	if !tools.ValidateEmail(req.Email) {
		RespondError(c, "E-mail inválido!", http.StatusBadRequest)
		return
	}
	role := req.Role
	if role == "" {
		role = models.ROLE_USUARIO
	}
	if role != models.ROLE_ADMIN && role != models.ROLE_USUARIO {
		RespondError(c, "role inválida", http.StatusBadRequest)
		return
	}

	var existente models.Usuario
	if err := db.Where("login = ?", req.Login).First(&existente).Error; err == nil {
		RespondError(c, "Login já está em uso", http.StatusBadRequest)
		return
	}
	if err := db.Where("email = ?", req.Email).First(&existente).Error; err == nil {
		RespondError(c, "Email já está em uso", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashSenha(req.Senha)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	now := time.Now()
	usuario.ID = uuid.New()
	usuario.SenhaHash = hash
	usuario.Role = role
	usuario.Ativo = true
	usuario.DataCriacao = &now

	if err := db.Create(&usuario).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"usuario": usuario})
}

// PUT /api/auth/usuarios/:id (admin)
func AtualizarUsuario(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	var req AtualizarUsuarioRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
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

	if req.Email != "" && req.Email != usuario.Email {
		var outro models.Usuario
		if err := db.Where("email = ? AND id <> ?", req.Email, id).First(&outro).Error; err == nil {
			RespondError(c, "Email já está em uso", http.StatusBadRequest)
			return
		}
		if !tools.ValidateEmail(req.Email) {
			RespondError(c, "E-mail inválido!", http.StatusBadRequest)
			return
		}
		usuario.Email = req.Email
	}
	if req.Nome != "" {
		usuario.Nome = req.Nome
	}
	if req.Empresa != nil {
		usuario.Empresa = *req.Empresa
	}
	if req.Role != "" {
		if req.Role != models.ROLE_ADMIN && req.Role != models.ROLE_USUARIO {
			RespondError(c, "role inválida", http.StatusBadRequest)
			return
		}
		usuario.Role = req.Role
	}
	if req.Ativo != nil {
		usuario.Ativo = *req.Ativo
	}
	if req.NovaSenha != "" {
		hash, err := auth.HashSenha(req.NovaSenha)
		if err != nil {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
		usuario.SenhaHash = hash
	}

	if err := db.Save(&usuario).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"usuario": usuario})
}

// DELETE /api/auth/usuarios/:id (admin)
// Um admin nunca deleta o próprio usuário.
func DeletarUsuario(c *gin.Context) {
	admin, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	if id == admin.ID {
		RespondError(c, "Você não pode deletar seu próprio usuário", http.StatusBadRequest)
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

	if err := db.Delete(&usuario).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	c.Status(http.StatusNoContent)
}
