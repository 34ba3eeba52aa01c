package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGarantirCriaItensComEstadoInicial(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()

	require.NoError(t, s.Garantir(db, v.ID))

	itens, err := s.Repo.ListarItens(db, v.ID)
	require.NoError(t, err)
	require.Len(t, itens, 3)

	porChave := map[string]string{}
	for _, it := range itens {
		porChave[it.Tarefa.Chave] = it.Estado
	}
	assert.Equal(t, EstadoAguardandoCliente, porChave["doc-1"])
	assert.Equal(t, EstadoAguardandoCliente, porChave["doc-2"])
	assert.Equal(t, EstadoNaoIniciado, porChave["conferencia"])
}

func TestGarantirIdempotente(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()

	require.NoError(t, s.Garantir(db, v.ID))
	antes, err := s.Repo.ListarItens(db, v.ID)
	require.NoError(t, err)

	require.NoError(t, s.Garantir(db, v.ID))
	require.NoError(t, s.Garantir(db, v.ID))

	depois, err := s.Repo.ListarItens(db, v.ID)
	require.NoError(t, err)
	require.Len(t, depois, len(antes))
	for i := range antes {
		assert.Equal(t, antes[i].ID, depois[i].ID)
		assert.Equal(t, antes[i].Estado, depois[i].Estado)
		assert.Equal(t, antes[i].Versao, depois[i].Versao)
	}
}

func TestGarantirNaoMexeEmItemExistente(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()

	require.NoError(t, s.Garantir(db, v.ID))
	item := itemDaTarefa(t, db, s, v.ID, "conferencia", 0)
	_, err := s.AlterarEstado(db, item.ID, "admin", EstadoConcluido)
	require.NoError(t, err)

	require.NoError(t, s.Garantir(db, v.ID))
	recarregado := itemDaTarefa(t, db, s, v.ID, "conferencia", 0)
	assert.Equal(t, EstadoConcluido, recarregado.Estado)
}

func TestGarantirSemModeloAtivo(t *testing.T) {
	db := novoBancoTeste(t)
	v := criarVendaTeste(t, db, "produto-sem-checklist")
	s := NewService()

	err := s.Garantir(db, v.ID)
	require.ErrorIs(t, err, ErrSemModelo)

	itens, err := s.Repo.ListarItens(db, v.ID)
	require.NoError(t, err)
	assert.Empty(t, itens)
}

func TestGarantirVendaInexistente(t *testing.T) {
	db := novoBancoTeste(t)
	s := NewService()
	require.ErrorIs(t, s.Garantir(db, 9999), ErrNaoEncontrado)
}

func TestGarantirCriaSoPrimeiraInstanciaDeGrupo(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloComGrupo(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()

	require.NoError(t, s.Garantir(db, v.ID))

	itens, err := s.Repo.ListarItens(db, v.ID)
	require.NoError(t, err)
	require.Len(t, itens, 3) // relacao-bens + escritura[0] + registro[0]
	for _, it := range itens {
		assert.Equal(t, 0, it.IndiceGrupo)
	}
}
