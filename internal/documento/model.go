package documento

import "time"

// Documento é o registro de metadados de um arquivo guardado no armazém.
// O conteúdo em si vive fora do banco; aqui fica só o identificador opaco.
type Documento struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Nome        string    `gorm:"not null" json:"nome"`
	ContentType string    `gorm:"size:255" json:"contentType"`
	Tamanho     int64     `json:"tamanho"`
	EnviadoPor  uint      `json:"enviadoPor"`
	CreatedAt   time.Time `json:"createdAt"`
}
