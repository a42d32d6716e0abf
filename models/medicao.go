package models

import "github.com/google/uuid"

// Medicao guarda o previsto x realizado de um mês do serviço.
// Ordem é o índice do mês (0, 1, 2, ...), fornecido pelo cliente;
// a combinação (servico, ordem) endereça a medição em updates.
type Medicao struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Ordem     int       `gorm:"not null" json:"ordem" form:"ordem"`
	Mes       string    `json:"mes" form:"mes"`
	Previsto  float64   `json:"previsto" form:"previsto"`
	Realizado float64   `json:"realizado" form:"realizado"`

	ServicoID uuid.UUID `gorm:"type:uuid;not null" json:"servico_id"`
}

func (Medicao) TableName() string {
	return "medicoes"
}
