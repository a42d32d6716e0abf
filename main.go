package main

import (
	"log"
	"time"

	"cronograma/auth"
	"cronograma/config"
	"cronograma/controllers"
	"cronograma/db"
	"cronograma/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Arquivo .env não encontrado, usando variáveis do ambiente")
	}

	cfg := config.Get("config.json")
	db.SetConfigurations(cfg)

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Erro ao conectar no banco: %v", err)
	}
	defer database.Close()

	if err := db.EnsureAdmin(database, cfg); err != nil {
		log.Fatalf("Erro ao garantir usuário admin: %v", err)
	}

	validade := time.Duration(cfg.Security.TokenHours) * time.Hour
	tokenService := auth.NewTokenService(
		cfg.Security.JwtSecret,
		cfg.Security.JwtIssuer,
		cfg.Security.JwtAudience,
		validade,
	)
	controllers.SetTokenService(tokenService)

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	router.Initialize(r, cfg)

	log.Printf("Servidor ouvindo na porta %s", cfg.ApiPort)
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		log.Fatalf("Erro no servidor: %v", err)
	}
}
