package apolice

import (
	"time"

	"gorm.io/gorm"
)

// Apolice é o artefato de fechamento de uma venda: o registro da
// apólice emitida pela seguradora.
type Apolice struct {
	gorm.Model

	VendaID    uint `gorm:"not null;index" json:"vendaId"`
	CorretorID uint `gorm:"not null;index" json:"corretorId"`

	Numero         string    `gorm:"size:100;not null" json:"numero"`
	Seguradora     string    `gorm:"size:255" json:"seguradora"`
	URL            string    `json:"url"` // link do PDF emitido
	InicioVigencia time.Time `json:"inicioVigencia"`
	FimVigencia    time.Time `json:"fimVigencia"`

	Premio float64 `gorm:"not null" json:"premio"`
	Status string  `gorm:"size:50" json:"status"` // ex.: "Vigente", "Cancelada"
}
