package models

import "github.com/google/uuid"

// Servico é um item de linha de um contrato.
// ValorTotal é derivado: soma do Previsto das medições.
type Servico struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Item        string    `gorm:"not null" json:"item" form:"item"`
	ServicoNome string    `gorm:"column:servico_nome;not null" json:"servico" form:"servico"`
	ValorTotal  float64   `json:"valor_total"`

	ContratoID uuid.UUID `gorm:"type:uuid;not null" json:"contrato_id"`

	Medicoes []Medicao `gorm:"foreignkey:ServicoID" json:"medicoes"`
}

func (servico Servico) MissingFields() string {
	if servico.Item == "" {
		return "item"
	} else if servico.ServicoNome == "" {
		return "servico"
	}
	return ""
}

func (Servico) TableName() string {
	return "servicos"
}
