package checklist

import (
	"errors"

	"github.com/PrimaSeguros/api-corretora/internal/auth"
	"gorm.io/gorm"
)

// As mudanças dirigidas por anexos (em_revisao, aprovado, rejeitado)
// acontecem só pelo sub-engine de revisão. Aqui fica o quadro das
// ações manuais do admin.
func transicaoManualValida(de, para string) bool {
	switch para {
	case EstadoNaoAplicavel:
		return !EstadoTerminal(de)
	case EstadoConcluido:
		return !EstadoTerminal(de) && de != EstadoBloqueado
	case EstadoNaoIniciado:
		// reabrir item concluído ou desbloquear
		return de == EstadoConcluido || de == EstadoBloqueado
	case EstadoEmAndamento:
		return de == EstadoNaoIniciado || de == EstadoAguardandoCliente
	case EstadoBloqueado:
		return !EstadoTerminal(de) && de != EstadoBloqueado
	}
	return false
}

// Qualquer estado não terminal e não bloqueado aceita submissão,
// incluindo reenvio após rejeição e reforço durante a revisão.
func podeSubmeter(estado string) bool {
	return !EstadoTerminal(estado) && estado != EstadoBloqueado
}

func tarefaVisivel(t Tarefa, papel string) bool {
	if t.Visibilidade == VisibilidadeAdmin {
		return papel == auth.PapelAdmin
	}
	return true
}

// AlterarEstado aplica uma ação manual do admin sobre o item. Falha
// sem efeito colateral algum quando a transição não está no quadro.
func (s *Service) AlterarEstado(db *gorm.DB, itemID uint, papel, novoEstado string) (*Item, error) {
	if papel != auth.PapelAdmin {
		return nil, ErrAcessoNegado
	}
	if !EstadoValido(novoEstado) {
		return nil, ErrValidacao
	}

	var out *Item
	err := db.Transaction(func(tx *gorm.DB) error {
		item, err := s.Repo.BuscarItem(tx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNaoEncontrado
			}
			return err
		}

		// item de upload com revisão fecha via aprovação, nunca na mão
		if novoEstado == EstadoConcluido && item.Tarefa.TipoAcao == TipoAcaoUpload && item.Tarefa.ExigeRevisao {
			return ErrTransicaoInvalida
		}
		if !transicaoManualValida(item.Estado, novoEstado) {
			return ErrTransicaoInvalida
		}

		ok, err := s.Repo.AtualizarEstadoItem(tx, item.ID, item.Versao, novoEstado)
		if err != nil {
			return err
		}
		if !ok {
			return ErrConflito
		}

		out, err = s.Repo.BuscarItem(tx, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
