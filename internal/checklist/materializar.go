package checklist

import (
	"errors"

	"github.com/PrimaSeguros/api-corretora/internal/venda"
	"gorm.io/gorm"
)

// Estado inicial de um item recém-materializado: tarefas do cliente
// já nascem aguardando_cliente, o resto nao_iniciado.
func estadoInicial(t Tarefa) string {
	if t.PapelResponsavel == ResponsavelCliente {
		return EstadoAguardandoCliente
	}
	return EstadoNaoIniciado
}

// modeloDaVenda resolve o modelo que rege o checklist da venda: o que
// ficou pinado na primeira materialização ou, antes dela, o ativo do
// produto. Ativar uma versão nova nunca remapeia venda já materializada.
func (s *Service) modeloDaVenda(db *gorm.DB, v *venda.Venda) (*Modelo, error) {
	var (
		m   *Modelo
		err error
	)
	if v.ChecklistModeloID != 0 {
		m, err = s.Repo.BuscarModeloPorID(db, v.ChecklistModeloID)
	} else {
		m, err = s.Repo.BuscarModeloAtivo(db, v.Produto)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// sem modelo não é erro: a venda simplesmente não tem checklist
			return nil, ErrSemModelo
		}
		return nil, err
	}
	return m, nil
}

// Garantir materializa os itens do checklist de uma venda a partir do
// modelo ativo do produto, e pina essa versão na venda: versões
// ativadas depois não mexem em checklist já materializado. É
// idempotente: chamadas repetidas nunca duplicam itens nem mexem no
// estado dos existentes. Tarefas repetíveis ganham só a instância de
// índice 0 aqui; as demais vêm da ação explícita de "adicionar
// instância".
func (s *Service) Garantir(db *gorm.DB, vendaID uint) error {
	var v venda.Venda
	if err := db.First(&v, vendaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNaoEncontrado
		}
		return err
	}

	modelo, err := s.modeloDaVenda(db, &v)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if v.ChecklistModeloID == 0 {
			if err := tx.Model(&venda.Venda{}).
				Where("id = ?", vendaID).
				Update("checklist_modelo_id", modelo.ID).Error; err != nil {
				return err
			}
		}

		existentes, err := s.Repo.ListarItens(tx, vendaID)
		if err != nil {
			return err
		}
		materializados := make(map[uint]bool, len(existentes))
		for _, it := range existentes {
			if it.IndiceGrupo == 0 {
				materializados[it.TarefaID] = true
			}
		}

		var novos []Item
		for _, etapa := range modelo.Etapas {
			for _, t := range etapa.Tarefas {
				if materializados[t.ID] {
					continue
				}
				novos = append(novos, Item{
					TarefaID:    t.ID,
					VendaID:     vendaID,
					IndiceGrupo: 0,
					Estado:      estadoInicial(t),
				})
			}
		}
		// OnConflict DoNothing no repositório cobre a corrida entre
		// dois "garantir" simultâneos
		return s.Repo.CriarItens(tx, novos)
	})
}
