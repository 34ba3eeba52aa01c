package checklist

import (
	"errors"

	"github.com/PrimaSeguros/api-corretora/internal/auth"
	"github.com/PrimaSeguros/api-corretora/internal/venda"
	"gorm.io/gorm"
)

// Submeter registra um anexo pendente por documento enviado e leva o
// item para em_revisao, tudo numa transação (ou entra tudo, ou nada).
// A mudança de estado não usa a trava otimista de propósito: duas
// submissões concorrentes convergem para em_revisao e a união dos
// anexos das duas é persistida; nenhum upload se perde.
func (s *Service) Submeter(db *gorm.DB, itemID uint, papel string, usuarioID uint, documentoIDs []string) (*Item, error) {
	if len(documentoIDs) == 0 {
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

		// quem envia precisa pertencer à venda do item
		var vnd venda.Venda
		if err := tx.First(&vnd, item.VendaID).Error; err != nil {
			return err
		}
		switch papel {
		case auth.PapelAdmin:
		case auth.PapelCorretor:
			if vnd.CorretorID != usuarioID {
				return ErrAcessoNegado
			}
		case auth.PapelCliente:
			if vnd.ClienteID != usuarioID {
				return ErrAcessoNegado
			}
		default:
			return ErrAcessoNegado
		}

		if item.Tarefa.TipoAcao != TipoAcaoUpload {
			return ErrTransicaoInvalida
		}
		if !tarefaVisivel(item.Tarefa, papel) {
			return ErrAcessoNegado
		}
		if papel == auth.PapelCliente && item.Tarefa.PapelResponsavel != ResponsavelCliente {
			return ErrAcessoNegado
		}
		if !podeSubmeter(item.Estado) {
			return ErrTransicaoInvalida
		}

		anexos := make([]Anexo, 0, len(documentoIDs))
		for _, docID := range documentoIDs {
			anexos = append(anexos, Anexo{
				ItemID:      item.ID,
				DocumentoID: docID,
				Status:      RevisaoPendente,
			})
		}
		if err := s.Repo.CriarAnexos(tx, anexos); err != nil {
			return err
		}
		if err := s.Repo.ForcarEstadoItem(tx, item.ID, EstadoEmRevisao); err != nil {
			return err
		}

		out, err = s.Repo.BuscarItem(tx, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Revisar grava a decisão do admin sobre um único anexo. Dois
// revisores no mesmo anexo: um vence, o outro recebe ErrConflito e
// refaz a leitura, nunca sobrescrita silenciosa.
func (s *Service) Revisar(db *gorm.DB, itemID, anexoID uint, papel string, revisorID uint, decisao, observacao string) (*Item, error) {
	if papel != auth.PapelAdmin {
		return nil, ErrAcessoNegado
	}
	if decisao != RevisaoAprovada && decisao != RevisaoRejeitada {
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

		anexo, err := s.Repo.BuscarAnexo(tx, anexoID)
		if err != nil || anexo.ItemID != item.ID {
			return ErrNaoEncontrado
		}
		if anexo.Status != RevisaoPendente {
			// já decidido por outro revisor
			return ErrConflito
		}

		ok, err := s.Repo.ResolverAnexo(tx, anexo.ID, anexo.Versao, decisao, observacao, revisorID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrConflito
		}

		if err := s.aplicarDesfechoRevisao(tx, item, decisao); err != nil {
			return err
		}
		out, err = s.Repo.BuscarItem(tx, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RevisarPendentesEmLote aplica a mesma decisão a todos os anexos que
// estavam pendentes no começo da transação. Anexo que outro revisor
// resolveu no meio do caminho fica fora do lote; anexo submetido
// durante o lote não entra no escopo e segue pendente.
func (s *Service) RevisarPendentesEmLote(db *gorm.DB, itemID uint, papel string, revisorID uint, decisao, observacao string) (int, *Item, error) {
	if papel != auth.PapelAdmin {
		return 0, nil, ErrAcessoNegado
	}
	if decisao != RevisaoAprovada && decisao != RevisaoRejeitada {
		return 0, nil, ErrValidacao
	}

	aplicados := 0
	var out *Item
	err := db.Transaction(func(tx *gorm.DB) error {
		item, err := s.Repo.BuscarItem(tx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNaoEncontrado
			}
			return err
		}

		pendentes, err := s.Repo.AnexosPendentes(tx, item.ID)
		if err != nil {
			return err
		}
		for _, a := range pendentes {
			ok, err := s.Repo.ResolverAnexo(tx, a.ID, a.Versao, decisao, observacao, revisorID)
			if err != nil {
				return err
			}
			if ok {
				aplicados++
			}
		}

		if aplicados > 0 {
			if err := s.aplicarDesfechoRevisao(tx, item, decisao); err != nil {
				return err
			}
		}
		out, err = s.Repo.BuscarItem(tx, itemID)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return aplicados, out, nil
}

// Política de fechamento: rejeição derruba
// o item para rejeitado na hora; o item só fecha como aprovado quando
// tem pelo menos um anexo aprovado e nenhum pendente. Anexos
// rejeitados antigos não seguram o fechamento. Item já em estado
// terminal não sai dele por revisão: um anexo pendente que sobrou num
// item marcado nao_aplicavel pode ser resolvido, mas o item fica onde
// o admin o deixou.
func (s *Service) aplicarDesfechoRevisao(tx *gorm.DB, item *Item, decisao string) error {
	if EstadoTerminal(item.Estado) {
		return nil
	}
	if decisao == RevisaoRejeitada {
		ok, err := s.Repo.AtualizarEstadoItem(tx, item.ID, item.Versao, EstadoRejeitado)
		if err != nil {
			return err
		}
		if !ok {
			return ErrConflito
		}
		return nil
	}

	pendentes, err := s.Repo.AnexosPendentes(tx, item.ID)
	if err != nil {
		return err
	}
	if len(pendentes) > 0 {
		return nil // segue em_revisao até resolver tudo
	}
	aprovado, err := s.Repo.TemAnexoAprovado(tx, item.ID)
	if err != nil {
		return err
	}
	if !aprovado {
		return nil
	}
	ok, err := s.Repo.AtualizarEstadoItem(tx, item.ID, item.Versao, EstadoAprovado)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflito
	}
	return nil
}
