package models

import (
	"time"

	"github.com/google/uuid"
)

// Contrato é um cronograma de serviços com duração em meses.
// O proprietário (UsuarioID) é fixado na criação e nunca muda.
type Contrato struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Nome        string     `gorm:"not null" json:"nome" form:"nome"`
	Descricao   string     `json:"descricao" form:"descricao"`
	NumeroMeses int        `json:"numero_meses" form:"numero_meses"`
	MesInicial  int        `json:"mes_inicial" form:"mes_inicial"`
	AnoInicial  int        `json:"ano_inicial" form:"ano_inicial"`

	// Reajuste: apenas armazenado, o cálculo fica no frontend.
	PercentualReajuste float64 `json:"percentual_reajuste" form:"percentual_reajuste"`
	MesInicioReajuste  int     `json:"mes_inicio_reajuste" form:"mes_inicio_reajuste"`

	UsuarioID uuid.UUID `gorm:"type:uuid;not null" json:"usuario_id"`
	Usuario   Usuario   `gorm:"association_autoupdate:false;association_autocreate:false" json:"-"`

	DataCriacao *time.Time `json:"data_criacao"`
}

func (contrato Contrato) MissingFields() string {
	if contrato.Nome == "" {
		return "nome"
	} else if contrato.NumeroMeses <= 0 {
		return "numero_meses"
	}
	return ""
}

func (Contrato) TableName() string {
	return "contratos"
}
