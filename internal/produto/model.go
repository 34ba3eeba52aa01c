package produto

import "gorm.io/gorm"

// Produto é um item do catálogo comercial. O campo Tipo é a chave que
// casa a venda com o modelo de checklist do produto.
type Produto struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Tipo  string `gorm:"size:100;not null;uniqueIndex" json:"tipo"` // ex.: "trust"
	Nome  string `gorm:"size:255;not null" json:"nome"`
	Ativo bool   `gorm:"not null;default:false" json:"ativo"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Produto{})
}
