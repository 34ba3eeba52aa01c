package corretor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/PrimaSeguros/api-corretora/internal/apolice"
	"github.com/PrimaSeguros/api-corretora/internal/auth"
	"github.com/PrimaSeguros/api-corretora/internal/utils"
	"github.com/PrimaSeguros/api-corretora/internal/venda"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type createCorretorRequest struct {
	Nome          string `json:"nome"`
	Sobrenome     string `json:"sobrenome"`
	CPF           string `json:"cpf"`
	RegistroSusep string `json:"registroSusep"`
	Email         string `json:"email"`
	Telefone      string `json:"telefone"`
	Foto          string `json:"foto"`
	Senha         string `json:"senha"`
	IsAdmin       bool   `json:"isAdmin"`
}

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

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Login)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.CheckSenha(user.Senha, req.Password) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	papel := auth.PapelCorretor
	if user.IsAdmin {
		papel = auth.PapelAdmin
	}
	token, err := auth.GerarToken(user.ID, papel)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// POST /corretores
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req createCorretorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Senha == "" {
		http.Error(w, "Campos 'email' e 'senha' são obrigatórios", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}

	c := Corretor{
		Nome:          req.Nome,
		Sobrenome:     req.Sobrenome,
		CPF:           req.CPF,
		RegistroSusep: req.RegistroSusep,
		Email:         req.Email,
		Telefone:      req.Telefone,
		Foto:          req.Foto,
		Senha:         hash,
		IsAdmin:       req.IsAdmin,
	}
	if err := h.Repository.Criar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao salvar corretor", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// GET /corretores
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar corretores", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /corretores/{id}: resumo com os contadores da carteira
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Corretor não encontrado", http.StatusNotFound)
		return
	}

	var vendasAtivas, apolicesEmitidas int64
	h.DB.Model(&venda.Venda{}).
		Where("corretor_id = ? AND status = ?", c.ID, venda.StatusEmAndamento).
		Count(&vendasAtivas)
	h.DB.Model(&apolice.Apolice{}).
		Joins("JOIN vendas ON vendas.id = apolices.venda_id").
		Where("vendas.corretor_id = ?", c.ID).
		Count(&apolicesEmitidas)

	resumo := ResumoCorretorDTO{
		ID:               c.ID,
		Nome:             c.Nome,
		Sobrenome:        c.Sobrenome,
		Email:            c.Email,
		RegistroSusep:    c.RegistroSusep,
		Telefone:         c.Telefone,
		Foto:             c.Foto,
		VendasAtivas:     int(vendasAtivas),
		ApolicesEmitidas: int(apolicesEmitidas),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resumo)
}

// PUT /corretores/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	papel := auth.PapelDoContexto(r.Context())
	userID := auth.UsuarioDoContexto(r.Context())
	if papel != auth.PapelAdmin && uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Corretor não encontrado", http.StatusNotFound)
		return
	}

	var req createCorretorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	existente.Nome = req.Nome
	existente.Sobrenome = req.Sobrenome
	existente.Telefone = req.Telefone
	existente.Foto = req.Foto
	if req.Senha != "" {
		hash, err := utils.HashSenha(req.Senha)
		if err != nil {
			http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
			return
		}
		existente.Senha = hash
	}

	if err := h.Repository.Atualizar(h.DB, existente); err != nil {
		http.Error(w, "Erro ao atualizar corretor", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// DELETE /corretores/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao excluir corretor", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
