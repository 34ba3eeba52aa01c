package apolice

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/PrimaSeguros/api-corretora/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// POST /vendas/{id}/apolice
func (h *Handler) CriarParaVenda(w http.ResponseWriter, r *http.Request) {
	vendaID, _ := strconv.Atoi(mux.Vars(r)["id"])
	var a Apolice
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	a.VendaID = uint(vendaID)
	if a.CorretorID == 0 {
		a.CorretorID = auth.UsuarioDoContexto(r.Context())
	}
	if err := h.Repository.Salvar(h.DB, &a); err != nil {
		http.Error(w, "Erro ao salvar apólice", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// GET /vendas/{id}/apolice
func (h *Handler) BuscarPorVenda(w http.ResponseWriter, r *http.Request) {
	vendaID, _ := strconv.Atoi(mux.Vars(r)["id"])
	a, err := h.Repository.BuscarPorVenda(h.DB, uint(vendaID))
	if err != nil {
		http.Error(w, "Apólice não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// GET /corretores/{id}/apolices
func (h *Handler) ListarPorCorretor(w http.ResponseWriter, r *http.Request) {
	corretorID, _ := strconv.Atoi(mux.Vars(r)["id"])
	list, err := h.Repository.ListarPorCorretor(h.DB, uint(corretorID))
	if err != nil {
		http.Error(w, "Erro ao listar apólices", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// PUT /apolices/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var a Apolice
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	a.ID = uint(id)
	if err := h.Repository.Atualizar(h.DB, &a); err != nil {
		http.Error(w, "Erro ao atualizar apólice", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// DELETE /apolices/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao excluir apólice", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
