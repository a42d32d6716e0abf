package models

import (
	"time"

	"github.com/google/uuid"
)

// ContratoCompartilhado delega acesso de um contrato a outro usuário.
// No máximo um registro por (contrato, usuário); o grantee nunca é o
// proprietário. PodeEditar=false dá apenas visualização.
type ContratoCompartilhado struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ContratoID uuid.UUID `gorm:"type:uuid;not null;unique_index:idx_contrato_usuario" json:"contrato_id"`
	UsuarioID  uuid.UUID `gorm:"type:uuid;not null;unique_index:idx_contrato_usuario" json:"usuario_id"`
	Usuario    Usuario   `gorm:"association_autoupdate:false;association_autocreate:false" json:"-"`

	PodeEditar           bool       `gorm:"not null;default:false" json:"pode_editar" form:"pode_editar"`
	DataCompartilhamento *time.Time `json:"data_compartilhamento"`
}

func (ContratoCompartilhado) TableName() string {
	return "contratos_compartilhados"
}
