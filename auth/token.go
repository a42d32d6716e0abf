package auth

import (
	"errors"
	"time"

	"cronograma/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

var (
	ErrInvalidCredentials = errors.New("login ou senha inválidos")
	ErrMalformed          = errors.New("token malformado")
	ErrBadSignature       = errors.New("assinatura do token inválida")
	ErrExpired            = errors.New("token expirado")
	ErrInactive           = errors.New("usuário desativado")
)

// Claims transportadas no JWT emitido pelo login.
type Claims struct {
	Login string `json:"login"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UsuarioID retorna o sub do token já convertido.
func (c *Claims) UsuarioID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService emite e valida tokens HS256. A chave, issuer, audience
// e validade vêm da configuração e ficam fixas após a construção.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	validade time.Duration
}

func NewTokenService(secret, issuer, audience string, validade time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		validade: validade,
	}
}

// Authenticate confere login+senha contra o banco. Usuários inativos
// não autenticam (mesma falha de credenciais, sem vazar o motivo).
func (ts *TokenService) Authenticate(db *gorm.DB, login, senha string) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := db.Where("login = ? AND ativo = ?", login, true).First(&usuario).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !CheckSenha(senha, usuario.SenhaHash) {
		return nil, ErrInvalidCredentials
	}
	return &usuario, nil
}

// Issue assina um token para o usuário. Devolve também a expiração
// para o payload de login.
func (ts *TokenService) Issue(usuario *models.Usuario) (string, time.Time, error) {
	expiracao := time.Now().Add(ts.validade)

	claims := Claims{
		Login: usuario.Login,
		Email: usuario.Email,
		Role:  usuario.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usuario.ID.String(),
			Issuer:    ts.issuer,
			Audience:  jwt.ClaimStrings{ts.audience},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiracao),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	assinado, err := token.SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return assinado, expiracao, nil
}

// Validate confere assinatura, expiração, issuer e audience.
func (ts *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return ts.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ts.issuer),
		jwt.WithAudience(ts.audience),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformed
		}
	}
	if _, err := claims.UsuarioID(); err != nil {
		return nil, ErrMalformed
	}
	return claims, nil
}
