package checklist

import "errors"

// Erros de negócio do engine. Os handlers mapeiam cada um para o
// status HTTP correspondente; nenhum vaza como falha não tratada.
var (
	ErrNaoEncontrado     = errors.New("registro não encontrado")
	ErrAcessoNegado      = errors.New("acesso negado para o papel do usuário")
	ErrTransicaoInvalida = errors.New("transição de estado não permitida")
	ErrSemModelo         = errors.New("nenhum modelo de checklist ativo para o produto")
	ErrConflito          = errors.New("conflito de concorrência; recarregue e tente novamente")
	ErrValidacao         = errors.New("payload inválido")
)
