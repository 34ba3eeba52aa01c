package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarcarConcluidoTarefaInterna(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	item := itemDaTarefa(t, db, s, v.ID, "conferencia", 0)
	atualizado, err := s.AlterarEstado(db, item.ID, "admin", EstadoConcluido)
	require.NoError(t, err)
	assert.Equal(t, EstadoConcluido, atualizado.Estado)
	assert.Equal(t, item.Versao+1, atualizado.Versao)
}

func TestConcluirNaMaoUploadComRevisaoFalha(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	item := itemDaTarefa(t, db, s, v.ID, "doc-1", 0)
	_, err := s.AlterarEstado(db, item.ID, "admin", EstadoConcluido)
	require.ErrorIs(t, err, ErrTransicaoInvalida)

	// sem efeito colateral
	recarregado := itemDaTarefa(t, db, s, v.ID, "doc-1", 0)
	assert.Equal(t, item.Estado, recarregado.Estado)
	assert.Equal(t, item.Versao, recarregado.Versao)
}

func TestMarcarNaoAplicavel(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	// nao_aplicavel é alcançável de qualquer estado não terminal
	item := itemDaTarefa(t, db, s, v.ID, "doc-1", 0)
	atualizado, err := s.AlterarEstado(db, item.ID, "admin", EstadoNaoAplicavel)
	require.NoError(t, err)
	assert.Equal(t, EstadoNaoAplicavel, atualizado.Estado)

	// mas não de um estado terminal
	_, err = s.AlterarEstado(db, item.ID, "admin", EstadoNaoAplicavel)
	require.ErrorIs(t, err, ErrTransicaoInvalida)
}

func TestReabrirItemConcluido(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	item := itemDaTarefa(t, db, s, v.ID, "conferencia", 0)
	_, err := s.AlterarEstado(db, item.ID, "admin", EstadoConcluido)
	require.NoError(t, err)

	reaberto, err := s.AlterarEstado(db, item.ID, "admin", EstadoNaoIniciado)
	require.NoError(t, err)
	assert.Equal(t, EstadoNaoIniciado, reaberto.Estado)
}

func TestBloquearEDesbloquear(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	item := itemDaTarefa(t, db, s, v.ID, "conferencia", 0)
	bloqueado, err := s.AlterarEstado(db, item.ID, "admin", EstadoBloqueado)
	require.NoError(t, err)
	assert.Equal(t, EstadoBloqueado, bloqueado.Estado)

	desbloqueado, err := s.AlterarEstado(db, item.ID, "admin", EstadoNaoIniciado)
	require.NoError(t, err)
	assert.Equal(t, EstadoNaoIniciado, desbloqueado.Estado)
}

func TestTransicaoForaDoQuadroFalha(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	item := itemDaTarefa(t, db, s, v.ID, "conferencia", 0)

	// estados dirigidos por anexos nunca entram pela ação manual
	for _, alvo := range []string{EstadoEmRevisao, EstadoAprovado, EstadoRejeitado, EstadoEnviado} {
		_, err := s.AlterarEstado(db, item.ID, "admin", alvo)
		assert.ErrorIs(t, err, ErrTransicaoInvalida, "alvo %s", alvo)
	}
}

func TestAlterarEstadoExigeAdmin(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	item := itemDaTarefa(t, db, s, v.ID, "conferencia", 0)
	for _, papel := range []string{"cliente", "corretor", ""} {
		_, err := s.AlterarEstado(db, item.ID, papel, EstadoConcluido)
		assert.ErrorIs(t, err, ErrAcessoNegado, "papel %q", papel)
	}
}

func TestAlterarEstadoValidaEntrada(t *testing.T) {
	db := novoBancoTeste(t)
	semearModeloTeste(t, db, "trust")
	v := criarVendaTeste(t, db, "trust")
	s := NewService()
	require.NoError(t, s.Garantir(db, v.ID))

	item := itemDaTarefa(t, db, s, v.ID, "conferencia", 0)
	_, err := s.AlterarEstado(db, item.ID, "admin", "estado-que-nao-existe")
	require.ErrorIs(t, err, ErrValidacao)

	_, err = s.AlterarEstado(db, 98765, "admin", EstadoConcluido)
	require.ErrorIs(t, err, ErrNaoEncontrado)
}
