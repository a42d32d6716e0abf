package auth

import "golang.org/x/crypto/bcrypt"

// HashSenha gera o hash bcrypt da senha em claro.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSenha compara a senha em claro com o hash armazenado.
func CheckSenha(senha, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
