package checklist

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type tarefaCreateDTO struct {
	Chave            string `json:"chave"`
	Rotulo           string `json:"rotulo"`
	PapelResponsavel string `json:"papelResponsavel"`
	Visibilidade     string `json:"visibilidade"`
	TipoAcao         string `json:"tipoAcao"`
	ExigeRevisao     bool   `json:"exigeRevisao"`
	ExigeEvidencia   bool   `json:"exigeEvidencia"`
	Repetivel        bool   `json:"repetivel"`
	GrupoRepeticao   string `json:"grupoRepeticao"`
}

type etapaCreateDTO struct {
	Chave   string            `json:"chave"`
	Rotulo  string            `json:"rotulo"`
	Ordem   int               `json:"ordem"`
	Peso    int               `json:"peso"`
	Tarefas []tarefaCreateDTO `json:"tarefas"`
}

type modeloCreateDTO struct {
	Produto string           `json:"produto"`
	Versao  int              `json:"versao"`
	Titulo  string           `json:"titulo"`
	Etapas  []etapaCreateDTO `json:"etapas"`
}

// POST /checklist/modelos (admin): cria a versão em rascunho. Modelo
// ativo nunca é editado: mudança de tarefa é sempre versão nova.
func (h *Handler) CriarModelo(w http.ResponseWriter, r *http.Request) {
	var dto modeloCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	dto.Produto = strings.ToLower(strings.TrimSpace(dto.Produto))
	if dto.Produto == "" || dto.Titulo == "" || len(dto.Etapas) == 0 {
		http.Error(w, "Campos 'produto', 'titulo' e 'etapas' são obrigatórios", http.StatusBadRequest)
		return
	}
	if dto.Versao <= 0 {
		dto.Versao = 1
	}

	m := Modelo{
		Produto: dto.Produto,
		Versao:  dto.Versao,
		Titulo:  dto.Titulo,
		Status:  ModeloRascunho,
	}
	for _, e := range dto.Etapas {
		if e.Peso < 0 {
			http.Error(w, "Peso de etapa não pode ser negativo", http.StatusBadRequest)
			return
		}
		etapa := Etapa{
			Chave:  e.Chave,
			Rotulo: e.Rotulo,
			Ordem:  e.Ordem,
			Peso:   e.Peso,
		}
		for _, t := range e.Tarefas {
			if t.Repetivel && strings.TrimSpace(t.GrupoRepeticao) == "" {
				http.Error(w, "Tarefa repetível exige 'grupoRepeticao'", http.StatusBadRequest)
				return
			}
			etapa.Tarefas = append(etapa.Tarefas, Tarefa{
				Chave:            t.Chave,
				Rotulo:           t.Rotulo,
				PapelResponsavel: valorOuPadrao(t.PapelResponsavel, ResponsavelCliente),
				Visibilidade:     valorOuPadrao(t.Visibilidade, VisibilidadeTodos),
				TipoAcao:         valorOuPadrao(t.TipoAcao, TipoAcaoInterna),
				ExigeRevisao:     t.ExigeRevisao,
				ExigeEvidencia:   t.ExigeEvidencia,
				Repetivel:        t.Repetivel,
				GrupoRepeticao:   t.GrupoRepeticao,
			})
		}
		m.Etapas = append(m.Etapas, etapa)
	}

	if err := h.Service.Repo.CriarModelo(h.DB, &m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "Já existe essa versão do modelo para o produto", http.StatusConflict)
			return
		}
		respondErro(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

// GET /checklist/modelos (admin)
func (h *Handler) ListarModelos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Repo.ListarModelos(h.DB)
	if err != nil {
		respondErro(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// POST /checklist/modelos/{id}/ativar (admin): ativa a versão e
// arquiva a que estava ativa para o mesmo produto.
func (h *Handler) AtivarModelo(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		m, err := h.Service.Repo.BuscarModeloPorID(tx, uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNaoEncontrado
			}
			return err
		}
		if m.Status == ModeloAtivo {
			return nil // idempotente
		}

		if err := tx.Model(&Modelo{}).
			Where("produto = ? AND status = ?", m.Produto, ModeloAtivo).
			Update("status", ModeloArquivado).Error; err != nil {
			return err
		}
		return h.Service.Repo.AtualizarStatusModelo(tx, m.ID, ModeloAtivo)
	})
	if err != nil {
		respondErro(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func valorOuPadrao(v, padrao string) string {
	if strings.TrimSpace(v) == "" {
		return padrao
	}
	return strings.TrimSpace(v)
}
