package comentario

import "gorm.io/gorm"

type Comentario struct {
	gorm.Model
	Texto      string `json:"texto"`
	VendaID    uint   `gorm:"not null;index" json:"vendaId"`
	AutorID    uint   `json:"autorId"`    // 0 quando for do sistema
	AutorPapel string `json:"autorPapel"` // "cliente" | "corretor" | "admin"
	System     bool   `json:"system"`
}
