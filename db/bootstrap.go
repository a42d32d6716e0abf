package db

import (
	"log"
	"time"

	"cronograma/auth"
	"cronograma/config"
	"cronograma/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// EnsureAdmin garante pelo menos um usuário Admin no banco, criado a
// partir dos valores de configuração. Roda uma vez no start e é
// idempotente: se já existe Admin, não faz nada.
func EnsureAdmin(database *gorm.DB, cfg config.Configuration) error {
	var count int
	if err := database.Model(&models.Usuario{}).
		Where("role = ?", models.ROLE_ADMIN).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashSenha(cfg.AdminPadrao.Senha)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := models.Usuario{
		ID:          uuid.New(),
		Login:       cfg.AdminPadrao.Login,
		SenhaHash:   hash,
		Nome:        cfg.AdminPadrao.Nome,
		Email:       cfg.AdminPadrao.Email,
		Role:        models.ROLE_ADMIN,
		Ativo:       true,
		DataCriacao: &now,
	}

	if err := database.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Usuário admin criado: %s", admin.Login)
	return nil
}
