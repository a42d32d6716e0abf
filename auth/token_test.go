package auth

import (
	"errors"
	"testing"
	"time"

	"cronograma/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

const (
	testSecret   = "segredo-de-teste"
	testIssuer   = "cronograma-backend"
	testAudience = "cronograma-frontend"
)

func novoService(validade time.Duration) *TokenService {
	return NewTokenService(testSecret, testIssuer, testAudience, validade)
}

func usuarioDeTeste() *models.Usuario {
	return &models.Usuario{
		ID:    uuid.New(),
		Login: "maria",
		Email: "maria@empresa.com",
		Role:  models.ROLE_USUARIO,
	}
}

func TestIssueEValidate(t *testing.T) {
	ts := novoService(8 * time.Hour)
	usuario := usuarioDeTeste()

	token, expiracao, err := ts.Issue(usuario)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if restante := time.Until(expiracao); restante < 7*time.Hour+59*time.Minute || restante > 8*time.Hour {
		t.Errorf("expiração fora da janela de 8h: falta %s", restante)
	}

	claims, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Login != usuario.Login {
		t.Errorf("login = %q, esperado %q", claims.Login, usuario.Login)
	}
	if claims.Role != models.ROLE_USUARIO {
		t.Errorf("role = %q, esperado %q", claims.Role, models.ROLE_USUARIO)
	}
	id, err := claims.UsuarioID()
	if err != nil {
		t.Fatalf("UsuarioID: %v", err)
	}
	if id != usuario.ID {
		t.Errorf("sub = %s, esperado %s", id, usuario.ID)
	}
}

func TestValidateExpirado(t *testing.T) {
	ts := novoService(-time.Minute)
	token, _, err := ts.Issue(usuarioDeTeste())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := novoService(8 * time.Hour).Validate(token); !errors.Is(err, ErrExpired) {
		t.Errorf("err = %v, esperado ErrExpired", err)
	}
}

func TestValidateAssinaturaInvalida(t *testing.T) {
	outro := NewTokenService("outro-segredo", testIssuer, testAudience, time.Hour)
	token, _, err := outro.Issue(usuarioDeTeste())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := novoService(time.Hour).Validate(token); !errors.Is(err, ErrBadSignature) {
		t.Errorf("err = %v, esperado ErrBadSignature", err)
	}
}

func TestValidateMalformado(t *testing.T) {
	ts := novoService(time.Hour)
	for _, token := range []string{"", "nao-e-um-token", "a.b.c"} {
		if _, err := ts.Validate(token); !errors.Is(err, ErrMalformed) {
			t.Errorf("Validate(%q) = %v, esperado ErrMalformed", token, err)
		}
	}
}

func TestValidateIssuerEAudience(t *testing.T) {
	tests := []struct {
		nome     string
		issuer   string
		audience string
	}{
		{"issuer errado", "outro-sistema", testAudience},
		{"audience errada", testIssuer, "outro-frontend"},
	}
	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			emissor := NewTokenService(testSecret, tt.issuer, tt.audience, time.Hour)
			token, _, err := emissor.Issue(usuarioDeTeste())
			if err != nil {
				t.Fatalf("Issue: %v", err)
			}
			if _, err := novoService(time.Hour).Validate(token); !errors.Is(err, ErrMalformed) {
				t.Errorf("err = %v, esperado ErrMalformed", err)
			}
		})
	}
}

func TestValidateSubNaoUUID(t *testing.T) {
	claims := Claims{
		Login: "maria",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "nao-e-uuid",
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	assinado, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	if _, err := novoService(time.Hour).Validate(assinado); !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, esperado ErrMalformed", err)
	}
}

func abreBanco(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	database.DB().SetMaxOpenConns(1)
	database.AutoMigrate(&models.Usuario{})
	t.Cleanup(func() { database.Close() })
	return database
}

func TestAuthenticate(t *testing.T) {
	database := abreBanco(t)
	ts := novoService(time.Hour)

	hash, err := HashSenha("senha123")
	if err != nil {
		t.Fatalf("HashSenha: %v", err)
	}
	criar := func(login string, ativo bool) {
		u := models.Usuario{
			ID:        uuid.New(),
			Login:     login,
			SenhaHash: hash,
			Nome:      login,
			Email:     login + "@empresa.com",
			Role:      models.ROLE_USUARIO,
			Ativo:     ativo,
		}
		if err := database.Create(&u).Error; err != nil {
			t.Fatalf("seed %s: %v", login, err)
		}
	}
	criar("ativa", true)
	criar("desativada", false)

	tests := []struct {
		nome    string
		login   string
		senha   string
		wantErr error
	}{
		{"credenciais corretas", "ativa", "senha123", nil},
		{"senha errada", "ativa", "outra", ErrInvalidCredentials},
		{"login inexistente", "fantasma", "senha123", ErrInvalidCredentials},
		{"conta desativada", "desativada", "senha123", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			usuario, err := ts.Authenticate(database, tt.login, tt.senha)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, esperado %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && usuario.Login != tt.login {
				t.Errorf("login = %q, esperado %q", usuario.Login, tt.login)
			}
		})
	}
}
