package venda

import (
	"time"

	"github.com/PrimaSeguros/api-corretora/internal/apolice"
	"github.com/PrimaSeguros/api-corretora/internal/comentario"
	"gorm.io/gorm"
)

// Convenção de status textual da venda
const (
	StatusEmAndamento = "Em Andamento"
	StatusConcluida   = "Concluída"
	StatusCancelada   = "Cancelada"
)

// Venda representa a contratação de um produto por um cliente,
// conduzida por um corretor. O campo Progresso é o percentual
// calculado pelo checklist e serve só para exibição.
type Venda struct {
	ID        uint           `gorm:"primaryKey" json:"vendaId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	ClienteID  uint `gorm:"not null;index" json:"clienteId"`
	CorretorID uint `gorm:"not null;index" json:"corretorId"`

	Produto        string  `gorm:"size:100;not null;index" json:"produto"` // tipo do produto, ex.: "trust"
	Status         string  `gorm:"size:50" json:"status"`
	PremioEstimado float64 `json:"premioEstimado"`
	UF             string  `gorm:"size:2" json:"uf"`

	// Percentual 0-100 gravado pelo recálculo do checklist (valor derivado,
	// nunca fonte de verdade)
	Progresso int `json:"progresso"`

	// Versão do modelo de checklist que materializou os itens desta venda;
	// zero enquanto nenhum checklist foi garantido
	ChecklistModeloID uint `gorm:"index" json:"checklistModeloId,omitempty"`

	Apolices    []apolice.Apolice       `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE" json:"apolices"`
	Comentarios []comentario.Comentario `gorm:"foreignKey:VendaID" json:"comentarios"`
}
