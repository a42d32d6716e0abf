package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	// Origens liberadas no CORS (frontend local por padrão).
	AllowedOrigins []string `json:"allowed_origins"`

	Security struct {
		JwtSecret   string `json:"jwt_secret"`
		JwtIssuer   string `json:"jwt_issuer"`
		JwtAudience string `json:"jwt_audience"`
		TokenHours  int    `json:"token_hours"`
	} `json:"security"`

	AdminPadrao struct {
		Login string `json:"login"`
		Senha string `json:"senha"`
		Nome  string `json:"nome"`
		Email string `json:"email"`
	} `json:"admin_padrao"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = getenv("JWT_SECRET", "CHANGE_ME")
	}
	if c.Security.JwtIssuer == "" {
		c.Security.JwtIssuer = "cronograma-backend"
	}
	if c.Security.JwtAudience == "" {
		c.Security.JwtAudience = "cronograma-frontend"
	}
	if c.Security.TokenHours <= 0 {
		c.Security.TokenHours = 8
	}
	if c.AdminPadrao.Login == "" {
		c.AdminPadrao.Login = "admin"
	}
	if c.AdminPadrao.Senha == "" {
		c.AdminPadrao.Senha = "admin123"
	}
	if c.AdminPadrao.Nome == "" {
		c.AdminPadrao.Nome = "Administrador"
	}
	if c.AdminPadrao.Email == "" {
		c.AdminPadrao.Email = "admin@sistema.com"
	}

	// env pode sobrescrever credenciais de banco sem editar o config.json
	c.DbHost = getenv("DB_HOST", c.DbHost)
	c.DbPort = getenv("DB_PORT", c.DbPort)
	c.DbUser = getenv("DB_USER", c.DbUser)
	c.DbName = getenv("DB_NAME", c.DbName)
	c.DbPass = getenv("DB_PASS", c.DbPass)

	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
