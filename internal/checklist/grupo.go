package checklist

import (
	"errors"

	"github.com/PrimaSeguros/api-corretora/internal/venda"
	"gorm.io/gorm"
)

// AdicionarInstanciaGrupo cria mais uma instância de um grupo
// repetível (ex.: mais um bem no inventário de um trust): um item novo
// por tarefa do grupo, no próximo índice livre. Itens das instâncias
// anteriores nunca são tocados. O engine não limita a quantidade de
// instâncias.
func (s *Service) AdicionarInstanciaGrupo(db *gorm.DB, vendaID uint, grupo string) ([]Item, error) {
	var v venda.Venda
	if err := db.First(&v, vendaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}

	modelo, err := s.modeloDaVenda(db, &v)
	if err != nil {
		return nil, err
	}

	var tarefas []Tarefa
	for _, etapa := range modelo.Etapas {
		for _, t := range etapa.Tarefas {
			if t.Repetivel && t.GrupoRepeticao == grupo {
				tarefas = append(tarefas, t)
			}
		}
	}
	if len(tarefas) == 0 {
		return nil, ErrNaoEncontrado
	}

	var novos []Item
	err = db.Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(tarefas))
		for _, t := range tarefas {
			ids = append(ids, t.ID)
		}
		max, err := s.Repo.MaxIndiceGrupo(tx, vendaID, ids)
		if err != nil {
			return err
		}
		proximo := max + 1

		novos = make([]Item, 0, len(tarefas))
		for _, t := range tarefas {
			novos = append(novos, Item{
				TarefaID:    t.ID,
				VendaID:     vendaID,
				IndiceGrupo: proximo,
				Estado:      estadoInicial(t),
			})
		}
		// criação estrita: colisão de índice com outra instância sendo
		// adicionada ao mesmo tempo vira ErrConflito, não item perdido
		if err := tx.Create(&novos).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflito
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return novos, nil
}
