package cliente

import "gorm.io/gorm"

type Cliente struct {
	gorm.Model
	Nome                  string `json:"nome"`
	Sobrenome             string `json:"sobrenome"`
	CPF                   string `json:"cpf" gorm:"unique"`
	Email                 string `json:"email" gorm:"unique"`
	Telefone              string `json:"telefone"`
	Senha                 string `json:"-"`
	PrecisaRedefinirSenha bool   `json:"-"`
	CorretorID            uint   `gorm:"index" json:"corretorId"` // corretor que fez o cadastro
}
