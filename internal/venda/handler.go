package venda

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/PrimaSeguros/api-corretora/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

type vendaCreateDTO struct {
	ClienteID      uint    `json:"clienteId"`
	Produto        string  `json:"produto"`
	Status         string  `json:"status"`
	PremioEstimado float64 `json:"premioEstimado"`
	UF             string  `json:"uf"`
}

type atualizarStatusRequest struct {
	Status string `json:"status"`
}

// POST /vendas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userVal := r.Context().Value(auth.CtxUserID)
	if userVal == nil {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	corretorID := userVal.(uint)

	var dto vendaCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Produto) == "" {
		http.Error(w, "O campo 'produto' é obrigatório", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Status) == "" {
		dto.Status = StatusEmAndamento
	}

	v := Venda{
		ClienteID:      dto.ClienteID,
		CorretorID:     corretorID,
		Produto:        strings.ToLower(strings.TrimSpace(dto.Produto)),
		Status:         dto.Status,
		PremioEstimado: dto.PremioEstimado,
		UF:             dto.UF,
	}
	if err := h.Repository.Salvar(h.DB, &v); err != nil {
		http.Error(w, "Erro ao salvar venda", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /corretores/{id}/vendas
func (h *Handler) ListarPorCorretor(w http.ResponseWriter, r *http.Request) {
	cid, _ := strconv.Atoi(mux.Vars(r)["id"])

	papel := auth.PapelDoContexto(r.Context())
	userID := auth.UsuarioDoContexto(r.Context())
	if papel != auth.PapelAdmin && uint(cid) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	list, err := h.Repository.ListarPorCorretor(h.DB, uint(cid))
	if err != nil {
		http.Error(w, "Erro ao listar vendas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /vendas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	v, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}
	if !podeVer(r, v) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// PATCH /vendas/{id}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	v, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}
	papel := auth.PapelDoContexto(r.Context())
	userID := auth.UsuarioDoContexto(r.Context())
	if papel != auth.PapelAdmin && v.CorretorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req atualizarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	v.Status = strings.TrimSpace(req.Status)
	if err := h.Repository.Atualizar(h.DB, v); err != nil {
		http.Error(w, "Erro ao atualizar venda", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// DELETE /vendas/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	v, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}
	papel := auth.PapelDoContexto(r.Context())
	userID := auth.UsuarioDoContexto(r.Context())
	if papel != auth.PapelAdmin && v.CorretorID != userID {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao excluir venda", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Permissão de leitura: admin, corretor dono ou cliente da venda
func podeVer(r *http.Request, v *Venda) bool {
	papel := auth.PapelDoContexto(r.Context())
	userID := auth.UsuarioDoContexto(r.Context())
	switch papel {
	case auth.PapelAdmin:
		return true
	case auth.PapelCorretor:
		return v.CorretorID == userID
	case auth.PapelCliente:
		return v.ClienteID == userID
	}
	return false
}
