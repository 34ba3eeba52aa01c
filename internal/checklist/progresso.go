package checklist

import (
	"errors"
	"math"

	"github.com/PrimaSeguros/api-corretora/internal/auth"
	"github.com/PrimaSeguros/api-corretora/internal/venda"
	"gorm.io/gorm"
)

// Recalcular relê o estado persistido dos itens e grava o percentual
// cheio (visão admin, ponderado) na venda. Pode rodar quantas vezes
// for: o valor em cache é sempre sobrescrito, nunca incrementado.
func (s *Service) Recalcular(db *gorm.DB, vendaID uint) (int, error) {
	var v venda.Venda
	if err := db.First(&v, vendaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNaoEncontrado
		}
		return 0, err
	}

	modelo, err := s.modeloDaVenda(db, &v)
	if err != nil {
		return 0, err
	}

	itens, err := s.Repo.ListarItens(db, vendaID)
	if err != nil {
		return 0, err
	}

	p := CalcularProgresso(modelo, itens, auth.PapelAdmin)
	if err := db.Model(&venda.Venda{}).Where("id = ?", vendaID).Update("progresso", p).Error; err != nil {
		return 0, err
	}
	return p, nil
}

// CalcularProgresso é a função pura do agregador: não toca o banco.
//
// Uma etapa conta como concluída quando todos os seus itens não
// bloqueados (somando todas as instâncias de grupo) estão em estado
// terminal; etapa ainda sem item materializado não conta. O percentual
// geral é a soma dos pesos das etapas concluídas sobre a soma de todos
// os pesos. Quando o papel do leitor restringe o conjunto de tarefas
// visíveis (visão do cliente/corretor), a conta cai para a versão sem
// pesos, sobre as etapas visíveis.
func CalcularProgresso(modelo *Modelo, itens []Item, papel string) int {
	type acum struct{ total, terminais, bloqueados int }

	etapaDaTarefa := make(map[uint]uint)
	restrito := false
	for _, etapa := range modelo.Etapas {
		for _, t := range etapa.Tarefas {
			if !tarefaVisivel(t, papel) {
				restrito = true
				continue
			}
			etapaDaTarefa[t.ID] = etapa.ID
		}
	}

	porEtapa := make(map[uint]*acum)
	for _, it := range itens {
		etapaID, ok := etapaDaTarefa[it.TarefaID]
		if !ok {
			continue
		}
		a := porEtapa[etapaID]
		if a == nil {
			a = &acum{}
			porEtapa[etapaID] = a
		}
		a.total++
		switch {
		case it.Estado == EstadoBloqueado:
			a.bloqueados++
		case EstadoTerminal(it.Estado):
			a.terminais++
		}
	}

	concluida := func(etapaID uint) bool {
		a := porEtapa[etapaID]
		if a == nil || a.total == 0 {
			return false
		}
		return a.terminais == a.total-a.bloqueados
	}

	totalPeso, pesoConcluido := 0, 0
	totalEtapas, etapasConcluidas := 0, 0
	for _, etapa := range modelo.Etapas {
		// etapa ainda sem tarefas fica fora da conta para todo mundo
		if len(etapa.Tarefas) == 0 {
			continue
		}
		visivel := false
		for _, t := range etapa.Tarefas {
			if tarefaVisivel(t, papel) {
				visivel = true
				break
			}
		}
		if !visivel {
			restrito = true
			continue
		}
		totalEtapas++
		totalPeso += etapa.Peso
		if concluida(etapa.ID) {
			etapasConcluidas++
			pesoConcluido += etapa.Peso
		}
	}

	if totalEtapas == 0 {
		return 0
	}
	// pesos são orientativos; sem peso algum, cai na conta simples
	if restrito || totalPeso == 0 {
		return int(math.Round(100 * float64(etapasConcluidas) / float64(totalEtapas)))
	}
	return int(math.Round(100 * float64(pesoConcluido) / float64(totalPeso)))
}
