package checklist

import (
	"testing"

	"github.com/PrimaSeguros/api-corretora/internal/auth"
	"github.com/PrimaSeguros/api-corretora/internal/venda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressoComecaEmZero(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	p, err := s.Recalcular(db, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p)
}

func TestProgressoPonderadoPorEtapa(t *testing.T) {
	db := novoBancoTeste(t)
	m := &Modelo{
		Produto: "vida", Versao: 1, Titulo: "t", Status: ModeloAtivo,
		Etapas: []Etapa{
			{
				Chave: "leve", Rotulo: "Leve", Ordem: 1, Peso: 10,
				Tarefas: []Tarefa{{
					Chave: "t1", Rotulo: "T1",
					PapelResponsavel: ResponsavelAdmin, Visibilidade: VisibilidadeTodos,
					TipoAcao: TipoAcaoInterna,
				}},
			},
			{
				Chave: "pesada", Rotulo: "Pesada", Ordem: 2, Peso: 30,
				Tarefas: []Tarefa{{
					Chave: "t2", Rotulo: "T2",
					PapelResponsavel: ResponsavelAdmin, Visibilidade: VisibilidadeTodos,
					TipoAcao: TipoAcaoInterna,
				}},
			},
		},
	}
	require.NoError(t, db.Create(m).Error)
	v := criarVendaTeste(t, db, "vida")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	// só a etapa de peso 30 fecha: 30/40 = 75
	item := itemDaTarefa(t, db, s, v.ID, "t2", 0)
	_, err := s.AlterarEstado(db, item.ID, "admin", EstadoConcluido)
	require.NoError(t, err)

	p, err := s.Recalcular(db, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, p)
}

func TestEtapaSemTarefasNaoDerrubaOsPesos(t *testing.T) {
	db := novoBancoTeste(t)
	m := &Modelo{
		Produto: "vida", Versao: 1, Titulo: "t", Status: ModeloAtivo,
		Etapas: []Etapa{
			{
				Chave: "leve", Rotulo: "Leve", Ordem: 1, Peso: 10,
				Tarefas: []Tarefa{{
					Chave: "t1", Rotulo: "T1",
					PapelResponsavel: ResponsavelAdmin, Visibilidade: VisibilidadeTodos,
					TipoAcao: TipoAcaoInterna,
				}},
			},
			{
				Chave: "pesada", Rotulo: "Pesada", Ordem: 2, Peso: 30,
				Tarefas: []Tarefa{{
					Chave: "t2", Rotulo: "T2",
					PapelResponsavel: ResponsavelAdmin, Visibilidade: VisibilidadeTodos,
					TipoAcao: TipoAcaoInterna,
				}},
			},
			// rascunho de etapa ainda sem tarefas
			{Chave: "vazia", Rotulo: "Vazia", Ordem: 3, Peso: 60},
		},
	}
	require.NoError(t, db.Create(m).Error)
	v := criarVendaTeste(t, db, "vida")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	item := itemDaTarefa(t, db, s, v.ID, "t2", 0)
	_, err := s.AlterarEstado(db, item.ID, "admin", EstadoConcluido)
	require.NoError(t, err)

	// a etapa vazia não entra na soma nem força a conta sem pesos
	p, err := s.Recalcular(db, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, p)
}

func TestProgressoDaVendaCompleta(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	// cliente envia os dois documentos, admin aprova os dois
	for _, chave := range []string{"doc-1", "doc-2"} {
		item := itemDaTarefa(t, db, s, v.ID, chave, 0)
		enviado, err := s.Submeter(db, item.ID, "cliente", 10, []string{docID()})
		require.NoError(t, err)
		_, err = s.Revisar(db, item.ID, enviado.Anexos[0].ID, "admin", 1, RevisaoAprovada, "")
		require.NoError(t, err)
	}

	// etapa A (peso 10) fechada, etapa B (peso 20) aberta: 10/30 = 33
	p, err := s.Recalcular(db, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, p)

	conferencia := itemDaTarefa(t, db, s, v.ID, "conferencia", 0)
	_, err = s.AlterarEstado(db, conferencia.ID, "admin", EstadoConcluido)
	require.NoError(t, err)

	p, err = s.Recalcular(db, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, p)

	// o valor cheio fica cacheado na venda
	var recarregada venda.Venda
	require.NoError(t, db.First(&recarregada, v.ID).Error)
	assert.Equal(t, 100, recarregada.Progresso)
}

func TestNaoAplicavelContaComoTerminal(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	// na etapa A, um documento é dispensado e o outro aprovado
	doc1 := itemDaTarefa(t, db, s, v.ID, "doc-1", 0)
	_, err := s.AlterarEstado(db, doc1.ID, "admin", EstadoNaoAplicavel)
	require.NoError(t, err)

	doc2 := itemDaTarefa(t, db, s, v.ID, "doc-2", 0)
	enviado, err := s.Submeter(db, doc2.ID, "cliente", 10, []string{docID()})
	require.NoError(t, err)
	_, err = s.Revisar(db, doc2.ID, enviado.Anexos[0].ID, "admin", 1, RevisaoAprovada, "")
	require.NoError(t, err)

	p, err := s.Recalcular(db, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, p)
}

func TestItemBloqueadoFicaForaDaConta(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	doc1 := itemDaTarefa(t, db, s, v.ID, "doc-1", 0)
	_, err := s.AlterarEstado(db, doc1.ID, "admin", EstadoBloqueado)
	require.NoError(t, err)

	doc2 := itemDaTarefa(t, db, s, v.ID, "doc-2", 0)
	enviado, err := s.Submeter(db, doc2.ID, "cliente", 10, []string{docID()})
	require.NoError(t, err)
	_, err = s.Revisar(db, doc2.ID, enviado.Anexos[0].ID, "admin", 1, RevisaoAprovada, "")
	require.NoError(t, err)

	// o item bloqueado não impede a etapa de fechar
	p, err := s.Recalcular(db, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, p)
}

func TestProgressoRestritoCaiParaContaSimples(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	for _, chave := range []string{"doc-1", "doc-2"} {
		item := itemDaTarefa(t, db, s, v.ID, chave, 0)
		enviado, err := s.Submeter(db, item.ID, "cliente", 10, []string{docID()})
		require.NoError(t, err)
		_, err = s.Revisar(db, item.ID, enviado.Anexos[0].ID, "admin", 1, RevisaoAprovada, "")
		require.NoError(t, err)
	}

	modelo, err := s.Repo.BuscarModeloAtivo(db, "trust")
	require.NoError(t, err)
	itens, err := s.Repo.ListarItens(db, v.ID)
	require.NoError(t, err)

	// admin vê as duas etapas ponderadas; o cliente só enxerga a etapa A,
	// então recebe a fração simples das etapas visíveis
	assert.Equal(t, 33, CalcularProgresso(modelo, itens, auth.PapelAdmin))
	assert.Equal(t, 100, CalcularProgresso(modelo, itens, auth.PapelCliente))
}

func TestInstanciaNovaReabreAEtapa(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloComGrupo(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	// fecha toda a instância 0 e a tarefa fixa
	for _, chave := range []string{"relacao-bens", "escritura"} {
		item := itemDaTarefa(t, db, s, v.ID, chave, 0)
		enviado, err := s.Submeter(db, item.ID, "cliente", 10, []string{docID()})
		require.NoError(t, err)
		_, err = s.Revisar(db, item.ID, enviado.Anexos[0].ID, "admin", 1, RevisaoAprovada, "")
		require.NoError(t, err)
	}
	registro := itemDaTarefa(t, db, s, v.ID, "registro", 0)
	_, err := s.AlterarEstado(db, registro.ID, "admin", EstadoConcluido)
	require.NoError(t, err)

	p, err := s.Recalcular(db, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, p)

	// um bem a mais volta a etapa para aberta
	_, err = s.AdicionarInstanciaGrupo(db, v.ID, "bens")
	require.NoError(t, err)

	p, err = s.Recalcular(db, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p)
}

func TestRecalcularVendaInexistente(t *testing.T) {
	db := novoBancoTeste(t)
	s := NewService()
	_, err := s.Recalcular(db, 999)
	require.ErrorIs(t, err, ErrNaoEncontrado)
}

func TestRecalcularSemModeloAtivo(t *testing.T) {
	db := novoBancoTeste(t)
	v := criarVendaTeste(t, db, "produto-sem-modelo")
	s := NewService()
	_, err := s.Recalcular(db, v.ID)
	require.ErrorIs(t, err, ErrSemModelo)
}
