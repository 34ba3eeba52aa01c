package produto

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// POST /produtos (admin)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var p Produto
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	p.Tipo = strings.ToLower(strings.TrimSpace(p.Tipo))
	if p.Tipo == "" || p.Nome == "" {
		http.Error(w, "Campos 'tipo' e 'nome' são obrigatórios", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Criar(h.DB, &p); err != nil {
		http.Error(w, "Erro ao salvar produto", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// GET /produtos
func (h *Handler) ListarAtivos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarAtivos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar produtos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
