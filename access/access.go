package access

import (
	"errors"

	"cronograma/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

var (
	ErrForbidden = errors.New("sem permissão para este contrato")
	ErrNotFound  = errors.New("contrato não encontrado")
)

// Capability é o nível de acesso de um usuário sobre um contrato.
// A ordem importa: Own > Edit > View > None.
type Capability int

const (
	None Capability = iota
	View
	Edit
	Own
)

func (c Capability) String() string {
	switch c {
	case Own:
		return "own"
	case Edit:
		return "edit"
	case View:
		return "view"
	default:
		return "none"
	}
}

// Resolve calcula a capability do usuário sobre o contrato:
// Own se for o proprietário, Edit/View conforme o compartilhamento,
// None sem vínculo ou com contrato inexistente.
//
// Role (Admin/Usuario) não entra aqui: admin não ganha acesso a
// contrato de terceiros por ser admin.
func Resolve(db *gorm.DB, usuarioID, contratoID uuid.UUID) Capability {
	var contrato models.Contrato
	if err := db.Where("id = ?", contratoID).First(&contrato).Error; err != nil {
		return None
	}
	return resolveContrato(db, usuarioID, &contrato)
}

func resolveContrato(db *gorm.DB, usuarioID uuid.UUID, contrato *models.Contrato) Capability {
	if contrato.UsuarioID == usuarioID {
		return Own
	}

	var compartilhamento models.ContratoCompartilhado
	err := db.Where("contrato_id = ? AND usuario_id = ?", contrato.ID, usuarioID).
		First(&compartilhamento).Error
	if err != nil {
		return None
	}
	if compartilhamento.PodeEditar {
		return Edit
	}
	return View
}

// Authorize carrega o contrato e exige a capability mínima.
// Contrato inexistente vira ErrNotFound antes de qualquer checagem
// de permissão; capability insuficiente vira ErrForbidden.
func Authorize(db *gorm.DB, usuarioID, contratoID uuid.UUID, required Capability) (*models.Contrato, error) {
	var contrato models.Contrato
	if err := db.Where("id = ?", contratoID).First(&contrato).Error; err != nil {
		return nil, ErrNotFound
	}
	if resolveContrato(db, usuarioID, &contrato) < required {
		return nil, ErrForbidden
	}
	return &contrato, nil
}
