package checklist

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/PrimaSeguros/api-corretora/internal/auth"
	"github.com/PrimaSeguros/api-corretora/internal/documento"
	"github.com/PrimaSeguros/api-corretora/internal/notificacao"
	"github.com/PrimaSeguros/api-corretora/internal/venda"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler traduz HTTP para o Service; nenhuma regra de negócio aqui.
type Handler struct {
	DB          *gorm.DB
	Service     *Service
	Armazem     documento.Armazem
	Notificador notificacao.Notificador
}

func NewHandler(db *gorm.DB, armazem documento.Armazem, notificador notificacao.Notificador) *Handler {
	return &Handler{
		DB:          db,
		Service:     NewService(),
		Armazem:     armazem,
		Notificador: notificador,
	}
}

/* ================== DTOs ================== */

type anexoDTO struct {
	ID          uint   `json:"id"`
	DocumentoID string `json:"documentoId"`
	URL         string `json:"url"`
	Status      string `json:"status"`
	Observacao  string `json:"observacao,omitempty"`
}

type itemDTO struct {
	ID          uint       `json:"id"`
	Estado      string     `json:"estado"`
	Versao      int        `json:"versao"`
	IndiceGrupo int        `json:"indiceGrupo"`
	Tarefa      Tarefa     `json:"tarefa"`
	EtapaChave  string     `json:"etapaChave"`
	Anexos      []anexoDTO `json:"anexos"`
}

type etapaDTO struct {
	ID        uint   `json:"id"`
	Chave     string `json:"chave"`
	Rotulo    string `json:"rotulo"`
	Ordem     int    `json:"ordem"`
	Peso      int    `json:"peso"`
	Concluida bool   `json:"concluida"`
}

type visaoChecklistDTO struct {
	ChecklistAplicavel bool       `json:"checklistAplicavel"`
	Progresso          int        `json:"progresso"`
	Etapas             []etapaDTO `json:"etapas"`
	Itens              []itemDTO  `json:"itens"`
}

type revisarRequest struct {
	AnexoID    uint   `json:"anexoId"`
	Decisao    string `json:"decisao"` // "aprovado" | "rejeitado"
	Observacao string `json:"observacao"`
}

type alterarEstadoRequest struct {
	Estado string `json:"estado"`
}

type observacaoRequest struct {
	Observacao string `json:"observacao"`
}

/* ================== helpers ================== */

func respondErro(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNaoEncontrado):
		http.Error(w, "Registro não encontrado", http.StatusNotFound)
	case errors.Is(err, ErrAcessoNegado):
		http.Error(w, "Acesso negado", http.StatusForbidden)
	case errors.Is(err, ErrTransicaoInvalida):
		http.Error(w, "Transição de estado não permitida", http.StatusBadRequest)
	case errors.Is(err, ErrValidacao):
		http.Error(w, "Payload inválido", http.StatusBadRequest)
	case errors.Is(err, ErrConflito):
		http.Error(w, "Conflito de concorrência; recarregue e tente novamente", http.StatusConflict)
	default:
		log.Printf("checklist: erro interno: %v", err)
		http.Error(w, "Erro interno", http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Permissão de leitura da venda: admin, corretor dono ou cliente dela
func (h *Handler) buscarVendaComPermissao(r *http.Request, vendaID uint) (*venda.Venda, error) {
	var v venda.Venda
	if err := h.DB.First(&v, vendaID).Error; err != nil {
		return nil, ErrNaoEncontrado
	}
	papel := auth.PapelDoContexto(r.Context())
	userID := auth.UsuarioDoContexto(r.Context())
	switch papel {
	case auth.PapelAdmin:
	case auth.PapelCorretor:
		if v.CorretorID != userID {
			return nil, ErrAcessoNegado
		}
	case auth.PapelCliente:
		if v.ClienteID != userID {
			return nil, ErrAcessoNegado
		}
	default:
		return nil, ErrAcessoNegado
	}
	return &v, nil
}

// Recalcula o cache de progresso depois de uma mutação; falha aqui não
// derruba a ação que já foi gravada.
func (h *Handler) recalcularAposMutacao(vendaID uint) {
	if _, err := h.Service.Recalcular(h.DB, vendaID); err != nil && !errors.Is(err, ErrSemModelo) {
		log.Printf("checklist: recálculo pós-mutação falhou para venda %d: %v", vendaID, err)
	}
}

/* ================== checklist da venda ================== */

// GET /vendas/{id}/checklist/garantir
func (h *Handler) Garantir(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if _, err := h.buscarVendaComPermissao(r, uint(id)); err != nil {
		respondErro(w, err)
		return
	}

	err := h.Service.Garantir(h.DB, uint(id))
	if errors.Is(err, ErrSemModelo) {
		respondJSON(w, http.StatusOK, map[string]bool{"checklistAplicavel": false})
		return
	}
	if err != nil {
		respondErro(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /vendas/{id}/checklist
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	v, err := h.buscarVendaComPermissao(r, uint(id))
	if err != nil {
		respondErro(w, err)
		return
	}

	// primeira visita materializa os itens
	if err := h.Service.Garantir(h.DB, v.ID); err != nil {
		if errors.Is(err, ErrSemModelo) {
			respondJSON(w, http.StatusOK, visaoChecklistDTO{ChecklistAplicavel: false})
			return
		}
		respondErro(w, err)
		return
	}

	// relê a venda: o garantir acima pode ter acabado de pinar a versão
	if err := h.DB.First(v, v.ID).Error; err != nil {
		respondErro(w, err)
		return
	}
	modelo, err := h.Service.modeloDaVenda(h.DB, v)
	if err != nil {
		respondErro(w, err)
		return
	}
	itens, err := h.Service.Repo.ListarItens(h.DB, v.ID)
	if err != nil {
		respondErro(w, err)
		return
	}

	papel := auth.PapelDoContexto(r.Context())
	respondJSON(w, http.StatusOK, h.montarVisao(modelo, itens, papel))
}

func (h *Handler) montarVisao(modelo *Modelo, itens []Item, papel string) visaoChecklistDTO {
	out := visaoChecklistDTO{
		ChecklistAplicavel: true,
		Progresso:          CalcularProgresso(modelo, itens, papel),
	}

	etapaDaTarefa := make(map[uint]*Etapa)
	for i := range modelo.Etapas {
		etapa := &modelo.Etapas[i]
		visivel := false
		for _, t := range etapa.Tarefas {
			if tarefaVisivel(t, papel) {
				etapaDaTarefa[t.ID] = etapa
				visivel = true
			}
		}
		if visivel {
			out.Etapas = append(out.Etapas, etapaDTO{
				ID:     etapa.ID,
				Chave:  etapa.Chave,
				Rotulo: etapa.Rotulo,
				Ordem:  etapa.Ordem,
				Peso:   etapa.Peso,
			})
		}
	}

	pendentesPorEtapa := make(map[uint]bool)
	temItemPorEtapa := make(map[uint]bool)
	for _, it := range itens {
		etapa, ok := etapaDaTarefa[it.TarefaID]
		if !ok {
			continue // invisível para o papel
		}
		temItemPorEtapa[etapa.ID] = true
		if it.Estado != EstadoBloqueado && !EstadoTerminal(it.Estado) {
			pendentesPorEtapa[etapa.ID] = true
		}

		dto := itemDTO{
			ID:          it.ID,
			Estado:      it.Estado,
			Versao:      it.Versao,
			IndiceGrupo: it.IndiceGrupo,
			Tarefa:      it.Tarefa,
			EtapaChave:  etapa.Chave,
			Anexos:      make([]anexoDTO, 0, len(it.Anexos)),
		}
		for _, a := range it.Anexos {
			dto.Anexos = append(dto.Anexos, anexoDTO{
				ID:          a.ID,
				DocumentoID: a.DocumentoID,
				URL:         h.Armazem.URL(a.DocumentoID),
				Status:      a.Status,
				Observacao:  a.Observacao,
			})
		}
		out.Itens = append(out.Itens, dto)
	}

	for i := range out.Etapas {
		eid := out.Etapas[i].ID
		out.Etapas[i].Concluida = temItemPorEtapa[eid] && !pendentesPorEtapa[eid]
	}
	return out
}

// POST /vendas/{id}/checklist/recalcular (admin)
func (h *Handler) Recalcular(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	p, err := h.Service.Recalcular(h.DB, uint(id))
	if errors.Is(err, ErrSemModelo) {
		respondJSON(w, http.StatusOK, map[string]bool{"checklistAplicavel": false})
		return
	}
	if err != nil {
		respondErro(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"progresso": p})
}

// POST /vendas/{id}/checklist/grupos/{grupo}/instancias
func (h *Handler) AdicionarInstanciaGrupo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, _ := strconv.Atoi(vars["id"])
	grupo := vars["grupo"]

	if _, err := h.buscarVendaComPermissao(r, uint(id)); err != nil {
		respondErro(w, err)
		return
	}

	itens, err := h.Service.AdicionarInstanciaGrupo(h.DB, uint(id), grupo)
	if err != nil {
		respondErro(w, err)
		return
	}
	h.recalcularAposMutacao(uint(id))
	respondJSON(w, http.StatusCreated, itens)
}

/* ================== ações sobre itens ================== */

// POST /checklist/itens/{id}/estado (admin)
func (h *Handler) AlterarEstado(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req alterarEstadoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	item, err := h.Service.AlterarEstado(h.DB, uint(id), auth.PapelDoContexto(r.Context()), strings.TrimSpace(req.Estado))
	if err != nil {
		respondErro(w, err)
		return
	}
	h.recalcularAposMutacao(item.VendaID)
	respondJSON(w, http.StatusOK, item)
}

// POST /checklist/itens/{id}/upload (multipart, campo "arquivos", 1+ arquivos)
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	// dono da venda (ou admin); barra antes de gravar qualquer arquivo
	item, err := h.Service.Repo.BuscarItem(h.DB, uint(id))
	if err != nil {
		respondErro(w, ErrNaoEncontrado)
		return
	}
	if _, err := h.buscarVendaComPermissao(r, item.VendaID); err != nil {
		respondErro(w, err)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Multipart inválido", http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["arquivos"]
	if len(files) == 0 {
		http.Error(w, "Nenhum arquivo enviado", http.StatusBadRequest)
		return
	}

	usuarioID := auth.UsuarioDoContexto(r.Context())
	documentoIDs := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, "Erro ao ler arquivo", http.StatusBadRequest)
			return
		}
		conteudo, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, "Erro ao ler arquivo", http.StatusBadRequest)
			return
		}
		doc, err := h.Armazem.Guardar(h.DB, fh.Filename, fh.Header.Get("Content-Type"), conteudo, usuarioID)
		if err != nil {
			http.Error(w, "Erro ao guardar documento", http.StatusInternalServerError)
			return
		}
		documentoIDs = append(documentoIDs, doc.ID)
	}

	item, err = h.Service.Submeter(h.DB, uint(id), auth.PapelDoContexto(r.Context()), usuarioID, documentoIDs)
	if err != nil {
		respondErro(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// POST /checklist/itens/{id}/revisao (admin)
func (h *Handler) Revisar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req revisarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	papel := auth.PapelDoContexto(r.Context())
	revisor := auth.UsuarioDoContexto(r.Context())
	item, err := h.Service.Revisar(h.DB, uint(id), req.AnexoID, papel, revisor, req.Decisao, req.Observacao)
	if err != nil {
		respondErro(w, err)
		return
	}

	if req.Decisao == RevisaoRejeitada && h.Notificador != nil {
		go h.Notificador.RevisaoRejeitada(item.VendaID, item.ID, req.Observacao)
	}
	h.recalcularAposMutacao(item.VendaID)
	respondJSON(w, http.StatusOK, item)
}

// POST /checklist/itens/{id}/revisao/aprovar-pendentes (admin)
func (h *Handler) AprovarPendentes(w http.ResponseWriter, r *http.Request) {
	h.revisarEmLote(w, r, RevisaoAprovada)
}

// POST /checklist/itens/{id}/revisao/rejeitar-pendentes (admin)
func (h *Handler) RejeitarPendentes(w http.ResponseWriter, r *http.Request) {
	h.revisarEmLote(w, r, RevisaoRejeitada)
}

func (h *Handler) revisarEmLote(w http.ResponseWriter, r *http.Request, decisao string) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req observacaoRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // corpo é opcional
	}

	papel := auth.PapelDoContexto(r.Context())
	revisor := auth.UsuarioDoContexto(r.Context())
	aplicados, item, err := h.Service.RevisarPendentesEmLote(h.DB, uint(id), papel, revisor, decisao, req.Observacao)
	if err != nil {
		respondErro(w, err)
		return
	}

	if decisao == RevisaoRejeitada && aplicados > 0 && h.Notificador != nil {
		go h.Notificador.RevisaoRejeitada(item.VendaID, item.ID, req.Observacao)
	}
	h.recalcularAposMutacao(item.VendaID)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"aplicados": aplicados,
		"item":      item,
	})
}
