package checklist

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrimaSeguros/api-corretora/internal/auth"
)

func requisicaoUpload(t *testing.T, itemID uint, papel string, usuarioID uint) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("arquivos", "rg.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/checklist/itens/%d/upload", itemID), &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(itemID)})
	ctx := context.WithValue(req.Context(), auth.CtxUserID, usuarioID)
	ctx = context.WithValue(ctx, auth.CtxPapel, papel)
	return req.WithContext(ctx)
}

func TestUploadBarraQuemNaoEDaVenda(t *testing.T) {
	h := novoHandlerTeste(t)
	semearModeloTeste(t, h.DB, "trust")
	v := criarVendaTeste(t, h.DB, "trust") // cliente 10
	require.NoError(t, h.Service.Garantir(h.DB, v.ID))
	item := itemDaTarefa(t, h.DB, h.Service, v.ID, "doc-1", 0)

	rec := httptest.NewRecorder()
	h.Upload(rec, requisicaoUpload(t, item.ID, auth.PapelCliente, 999))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// nem arquivo nem anexo ficaram para trás
	depois, err := h.Service.Repo.BuscarItem(h.DB, item.ID)
	require.NoError(t, err)
	assert.Empty(t, depois.Anexos)

	rec = httptest.NewRecorder()
	h.Upload(rec, requisicaoUpload(t, item.ID, auth.PapelCliente, 10))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestUploadItemInexistente(t *testing.T) {
	h := novoHandlerTeste(t)
	rec := httptest.NewRecorder()
	h.Upload(rec, requisicaoUpload(t, 424242, auth.PapelAdmin, 1))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
