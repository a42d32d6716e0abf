package models

import (
	"time"

	"github.com/google/uuid"
)

/************************************************
/**** MARK: ROLES ****/
/************************************************/
const ROLE_ADMIN = "Admin"
const ROLE_USUARIO = "Usuario"

// Usuario representa uma identidade do sistema.
// SenhaHash guarda o hash bcrypt, nunca a senha em claro.
type Usuario struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Login       string     `gorm:"not null;unique" json:"login" form:"login"`
	SenhaHash   string     `gorm:"not null" json:"-"`
	Role        string     `gorm:"not null;default:'Usuario'" json:"role" form:"role"`
	Nome        string     `gorm:"not null" json:"nome" form:"nome"`
	Email       string     `gorm:"not null;unique" json:"email" form:"email"`
	Empresa     string     `json:"empresa" form:"empresa"`
	Ativo       bool       `gorm:"not null;default:true" json:"ativo" form:"ativo"`
	DataCriacao *time.Time `json:"data_criacao"`
}

func (usuario Usuario) MissingFields() string {
	if usuario.Login == "" {
		return "login"
	} else if usuario.Nome == "" {
		return "nome"
	} else if usuario.Email == "" {
		return "email"
	}
	return ""
}

func (Usuario) TableName() string {
	return "usuarios"
}
