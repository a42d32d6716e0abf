package auth

import "testing"

func TestHashECheckSenha(t *testing.T) {
	hash, err := HashSenha("senha-forte-123")
	if err != nil {
		t.Fatalf("HashSenha: %v", err)
	}
	if hash == "senha-forte-123" {
		t.Fatal("hash não pode ser a senha em claro")
	}
	if !CheckSenha("senha-forte-123", hash) {
		t.Error("senha correta deveria conferir")
	}
	if CheckSenha("senha-errada", hash) {
		t.Error("senha errada não deveria conferir")
	}
	if CheckSenha("senha-forte-123", "") {
		t.Error("hash vazio não deveria conferir")
	}
}

func TestHashesDiferentesParaMesmaSenha(t *testing.T) {
	a, err := HashSenha("repetida")
	if err != nil {
		t.Fatalf("HashSenha: %v", err)
	}
	b, err := HashSenha("repetida")
	if err != nil {
		t.Fatalf("HashSenha: %v", err)
	}
	if a == b {
		t.Error("bcrypt deveria salgar: dois hashes da mesma senha não podem ser iguais")
	}
}
