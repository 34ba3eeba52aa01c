package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdicionarInstanciaGrupo(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloComGrupo(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	novos, err := s.AdicionarInstanciaGrupo(db, v.ID, "bens")
	require.NoError(t, err)
	require.Len(t, novos, 2, "uma tarefa de upload e uma interna no grupo")
	for _, it := range novos {
		assert.Equal(t, 1, it.IndiceGrupo)
	}

	// estados iniciais seguem o responsável da tarefa, como no garantir
	escritura := itemDaTarefa(t, db, s, v.ID, "escritura", 1)
	registro := itemDaTarefa(t, db, s, v.ID, "registro", 1)
	assert.Equal(t, EstadoAguardandoCliente, escritura.Estado)
	assert.Equal(t, EstadoNaoIniciado, registro.Estado)
}

func TestAdicionarInstanciaNaoTocaAsAnteriores(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloComGrupo(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	// a instância 0 já tem trabalho feito
	primeiro := itemDaTarefa(t, db, s, v.ID, "escritura", 0)
	enviado, err := s.Submeter(db, primeiro.ID, "cliente", 10, []string{docID()})
	require.NoError(t, err)

	_, err = s.AdicionarInstanciaGrupo(db, v.ID, "bens")
	require.NoError(t, err)

	recarregado := itemDaTarefa(t, db, s, v.ID, "escritura", 0)
	assert.Equal(t, enviado.Estado, recarregado.Estado)
	assert.Equal(t, enviado.Versao, recarregado.Versao)
	assert.Len(t, recarregado.Anexos, 1)
}

func TestInstanciasSucessivasAvancamOIndice(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloComGrupo(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	for esperado := 1; esperado <= 3; esperado++ {
		novos, err := s.AdicionarInstanciaGrupo(db, v.ID, "bens")
		require.NoError(t, err)
		for _, it := range novos {
			assert.Equal(t, esperado, it.IndiceGrupo)
		}
	}

	itens, err := s.Repo.ListarItens(db, v.ID)
	require.NoError(t, err)
	// 1 tarefa fixa + 2 tarefas do grupo em 4 instâncias
	assert.Len(t, itens, 9)
}

func TestGrupoDesconhecido(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloComGrupo(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	_, err := s.AdicionarInstanciaGrupo(db, v.ID, "frota")
	require.ErrorIs(t, err, ErrNaoEncontrado)
}

func TestGrupoEmVendaInexistente(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloComGrupo(t, db, "trust")
	s := NewService()

	_, err := s.AdicionarInstanciaGrupo(db, 999, "bens")
	require.ErrorIs(t, err, ErrNaoEncontrado)
}
