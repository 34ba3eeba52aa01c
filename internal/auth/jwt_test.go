package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIdaEVolta(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GerarToken(42, PapelCorretor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidarToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, PapelCorretor, claims.Papel)
}

func TestTokenAdulteradoFalha(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GerarToken(1, PapelAdmin)
	require.NoError(t, err)

	_, err = ValidarToken(token + "x")
	require.Error(t, err)

	_, err = ValidarToken("nem-é-um-jwt")
	require.Error(t, err)
}

func TestMiddlewareInjetaUsuarioEPapel(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GerarToken(7, PapelCliente)
	require.NoError(t, err)

	var vistoID uint
	var vistoPapel string
	handler := MiddlewareAutenticacao(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vistoID = UsuarioDoContexto(r.Context())
		vistoPapel = PapelDoContexto(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/vendas", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), vistoID)
	assert.Equal(t, PapelCliente, vistoPapel)
}

func TestMiddlewareBarraSemToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	chamado := false
	handler := MiddlewareAutenticacao(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chamado = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/vendas", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, chamado)
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/corretores", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code, "sem papel no contexto")
}
