package cliente

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/PrimaSeguros/api-corretora/internal/auth"
	"github.com/PrimaSeguros/api-corretora/internal/utils"
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

type createClienteRequest struct {
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
	Telefone  string `json:"telefone"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login gera um JWT de cliente para credenciais válidas
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
	token, err := auth.GerarToken(user.ID, auth.PapelCliente)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// POST /clientes: cadastro feito pelo corretor; gera senha temporária
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req createClienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		http.Error(w, "O campo 'email' é obrigatório", http.StatusBadRequest)
		return
	}

	senhaTemp, err := utils.GerarSenhaTemporaria()
	if err != nil {
		http.Error(w, "Erro ao gerar senha temporária", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashSenha(senhaTemp)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}

	c := Cliente{
		Nome:                  req.Nome,
		Sobrenome:             req.Sobrenome,
		CPF:                   req.CPF,
		Email:                 req.Email,
		Telefone:              req.Telefone,
		Senha:                 hash,
		PrecisaRedefinirSenha: true,
		CorretorID:            auth.UsuarioDoContexto(r.Context()),
	}
	if err := h.Repository.Criar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao salvar cliente", http.StatusInternalServerError)
		return
	}

	// A senha temporária sai uma única vez, na resposta do cadastro
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"cliente":         c,
		"senhaTemporaria": senhaTemp,
	})
}

// GET /corretores/{id}/clientes
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
		http.Error(w, "Erro ao listar clientes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /clientes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}
	papel := auth.PapelDoContexto(r.Context())
	userID := auth.UsuarioDoContexto(r.Context())
	if papel == auth.PapelCliente && userID != c.ID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// PUT /clientes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	papel := auth.PapelDoContexto(r.Context())
	userID := auth.UsuarioDoContexto(r.Context())
	if papel == auth.PapelCliente && userID != existente.ID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req createClienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	existente.Nome = req.Nome
	existente.Sobrenome = req.Sobrenome
	existente.Telefone = req.Telefone

	if err := h.Repository.Atualizar(h.DB, existente); err != nil {
		http.Error(w, "Erro ao atualizar cliente", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// DELETE /clientes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao excluir cliente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
