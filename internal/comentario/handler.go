package comentario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/PrimaSeguros/api-corretora/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula o DB e o Repository
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

type CriarComentarioRequest struct {
	Texto           string `json:"texto"`
	IsSystemComment bool   `json:"isSystemComment,omitempty"`
}

// POST /vendas/{id}/comentarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	vendaID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de venda inválido", http.StatusBadRequest)
		return
	}

	var req CriarComentarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Texto == "" {
		http.Error(w, "O campo 'texto' é obrigatório", http.StatusBadRequest)
		return
	}

	c := Comentario{
		Texto:   req.Texto,
		VendaID: uint(vendaID),
		System:  req.IsSystemComment,
	}
	if !req.IsSystemComment {
		userID := auth.UsuarioDoContexto(r.Context())
		if userID == 0 {
			http.Error(w, "Não autenticado", http.StatusUnauthorized)
			return
		}
		c.AutorID = userID
		c.AutorPapel = auth.PapelDoContexto(r.Context())
	}

	if err := h.Repository.Criar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao criar comentário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toDTO(c))
}

// GET /vendas/{id}/comentarios
func (h *Handler) ListarPorVenda(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	comentarios, err := h.Repository.ListarPorVenda(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Erro ao listar comentários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTOs(comentarios))
}

// PUT /comentarios/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Comentário não encontrado", http.StatusNotFound)
		return
	}
	papel := auth.PapelDoContexto(r.Context())
	userID := auth.UsuarioDoContexto(r.Context())
	if papel != auth.PapelAdmin && existente.AutorID != userID {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	var req CriarComentarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Texto == "" {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Atualizar(h.DB, uint(id), req.Texto); err != nil {
		http.Error(w, "Erro ao atualizar comentário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// DELETE /comentarios/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Repository.Remover(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao remover comentário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Comentário removido com sucesso"))
}
