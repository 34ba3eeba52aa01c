package corretor

import "gorm.io/gorm"

type Corretor struct {
	gorm.Model
	Nome                  string `json:"nome"`
	Sobrenome             string `json:"sobrenome"`
	CPF                   string `json:"cpf" gorm:"unique"`
	RegistroSusep         string `json:"registroSusep" gorm:"unique"`
	Email                 string `json:"email" gorm:"unique"`
	Telefone              string `json:"telefone"`
	Foto                  string `json:"foto"`
	Senha                 string `json:"-"`
	IsAdmin               bool   `json:"isAdmin"`
	PrecisaRedefinirSenha bool   `json:"-"`
}
