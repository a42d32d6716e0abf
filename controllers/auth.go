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

type LoginRequest struct {
	Login string `json:"login" form:"login"`
	Senha string `json:"senha" form:"senha"`
}

type LoginResponse struct {
	Token     string         `json:"token"`
	Expiracao time.Time      `json:"expiracao"`
	Usuario   models.Usuario `json:"usuario"`
}

type RegistroRequest struct {
	Login   string `json:"login" form:"login"`
	Senha   string `json:"senha" form:"senha"`
	Nome    string `json:"nome" form:"nome"`
	Email   string `json:"email" form:"email"`
	Empresa string `json:"empresa" form:"empresa"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Login == "" || req.Senha == "" {
		RespondError(c, "login e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	usuario, err := tokenService.Authenticate(db, req.Login, req.Senha)
	if err != nil {
		RespondError(c, err.Error(), http.StatusUnauthorized)
		return
	}

	token, expiracao, err := tokenService.Issue(usuario)
	if err != nil {
		RespondError(c, "erro ao assinar token", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, LoginResponse{Token: token, Expiracao: expiracao, Usuario: *usuario})
}

// POST /api/auth/registro
// Auto-cadastro: sempre cria Role "Usuario" e Ativo=true.
func Registro(c *gin.Context) {
	var req RegistroRequest
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
	usuario.Role = models.ROLE_USUARIO
	usuario.Ativo = true
	usuario.DataCriacao = &now

	if err := db.Create(&usuario).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"usuario": usuario})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usuario": usuario})
}
