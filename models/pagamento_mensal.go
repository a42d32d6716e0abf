package models

import "github.com/google/uuid"

// PagamentoMensal registra o valor pago num mês do contrato.
// Ordem é único dentro do contrato (upsert por (contrato, ordem)).
type PagamentoMensal struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Ordem int       `gorm:"not null" json:"ordem" form:"ordem"`
	Mes   string    `json:"mes" form:"mes"`
	Valor float64   `json:"valor" form:"valor"`

	ContratoID uuid.UUID `gorm:"type:uuid;not null" json:"contrato_id"`
}

func (PagamentoMensal) TableName() string {
	return "pagamentos_mensais"
}
