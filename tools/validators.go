package tools

import "regexp"

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// ValidateEmail verifica o formato do endereço.
func ValidateEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// CheckPassword retorna uma mensagem de erro se a senha for fraca,
// ou vazio se ela for aceitável.
func CheckPassword(senha string) string {
	if len(senha) < 6 {
		return "A senha deve ter pelo menos 6 caracteres"
	}
	return ""
}
