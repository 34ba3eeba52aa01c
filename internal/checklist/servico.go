package checklist

// Service concentra as regras do engine de checklist. Os handlers só
// traduzem HTTP; toda transição de estado passa por aqui, cada ação
// dentro de uma transação única.
type Service struct {
	Repo Repository
}

func NewService() *Service {
	return &Service{Repo: NewRepository()}
}
