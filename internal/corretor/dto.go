package corretor

type ResumoCorretorDTO struct {
	ID               uint   `json:"id"`
	Nome             string `json:"nome"`
	Sobrenome        string `json:"sobrenome"`
	Email            string `json:"email"`
	RegistroSusep    string `json:"registroSusep"`
	Telefone         string `json:"telefone"`
	Foto             string `json:"foto"`
	VendasAtivas     int    `json:"vendasAtivas"`
	ApolicesEmitidas int    `json:"apolicesEmitidas"`
}
