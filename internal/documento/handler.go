package documento

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Armazem Armazem
}

func NewHandler(db *gorm.DB, armazem Armazem) *Handler {
	return &Handler{DB: db, Armazem: armazem}
}

// GET /documentos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var doc Documento
	if err := h.DB.First(&doc, "id = ?", id).Error; err != nil {
		http.Error(w, "Documento não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}

// GET /documentos/{id}/visualizar
func (h *Handler) Visualizar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var doc Documento
	if err := h.DB.First(&doc, "id = ?", id).Error; err != nil {
		http.Error(w, "Documento não encontrado", http.StatusNotFound)
		return
	}
	conteudo, err := h.Armazem.Ler(id)
	if err != nil {
		http.Error(w, "Conteúdo indisponível", http.StatusNotFound)
		return
	}
	if doc.ContentType != "" {
		w.Header().Set("Content-Type", doc.ContentType)
	}
	_, _ = w.Write(conteudo)
}
