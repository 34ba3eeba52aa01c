package checklist

import (
	"time"

	"gorm.io/gorm"
)

// Status de um modelo de checklist
const (
	ModeloRascunho  = "rascunho"
	ModeloAtivo     = "ativo"
	ModeloArquivado = "arquivado"
)

// Papel responsável por uma tarefa
const (
	ResponsavelCliente = "cliente"
	ResponsavelAdmin   = "admin"
)

// Visibilidade de uma tarefa
const (
	VisibilidadeTodos = "todos"
	VisibilidadeAdmin = "admin"
)

// Tipo de ação de uma tarefa
const (
	TipoAcaoUpload  = "upload"
	TipoAcaoInterna = "interna"
)

// Estados possíveis de um item (conjunto fechado)
const (
	EstadoNaoIniciado       = "nao_iniciado"
	EstadoEmAndamento       = "em_andamento"
	EstadoAguardandoCliente = "aguardando_cliente"
	EstadoEnviado           = "enviado"
	EstadoEmRevisao         = "em_revisao"
	EstadoAprovado          = "aprovado"
	EstadoRejeitado         = "rejeitado"
	EstadoBloqueado         = "bloqueado"
	EstadoConcluido         = "concluido"
	EstadoNaoAplicavel      = "nao_aplicavel"
)

// Status de revisão de um anexo
const (
	RevisaoPendente  = "pendente"
	RevisaoAprovada  = "aprovado"
	RevisaoRejeitada = "rejeitado"
)

var estadosValidos = map[string]bool{
	EstadoNaoIniciado:       true,
	EstadoEmAndamento:       true,
	EstadoAguardandoCliente: true,
	EstadoEnviado:           true,
	EstadoEmRevisao:         true,
	EstadoAprovado:          true,
	EstadoRejeitado:         true,
	EstadoBloqueado:         true,
	EstadoConcluido:         true,
	EstadoNaoAplicavel:      true,
}

// EstadoValido diz se a string pertence ao conjunto fechado de estados.
func EstadoValido(estado string) bool {
	return estadosValidos[estado]
}

// EstadoTerminal diz se o estado conta como "feito" para o progresso.
func EstadoTerminal(estado string) bool {
	return estado == EstadoAprovado || estado == EstadoConcluido || estado == EstadoNaoAplicavel
}

// Modelo define as etapas e tarefas do checklist de um produto,
// numa versão. Imutável depois de ativo e referenciado por itens;
// mudanças exigem nova versão.
type Modelo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Produto string `gorm:"size:100;not null;uniqueIndex:idx_modelo_produto_versao" json:"produto"`
	Versao  int    `gorm:"not null;uniqueIndex:idx_modelo_produto_versao" json:"versao"`
	Titulo  string `gorm:"size:255;not null" json:"titulo"`
	Status  string `gorm:"size:20;not null;default:rascunho" json:"status"`

	Etapas []Etapa `gorm:"foreignKey:ModeloID;constraint:OnDelete:CASCADE" json:"etapas"`
}

// Etapa agrupa tarefas dentro de um modelo. Ordem é só exibição;
// o peso alimenta o cálculo de progresso.
type Etapa struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ModeloID uint   `gorm:"not null;index;uniqueIndex:idx_etapa_modelo_chave" json:"modeloId"`
	Chave    string `gorm:"size:100;not null;uniqueIndex:idx_etapa_modelo_chave" json:"chave"`
	Rotulo   string `gorm:"size:255;not null" json:"rotulo"`
	Ordem    int    `gorm:"not null" json:"ordem"`
	Peso     int    `gorm:"not null;default:0" json:"peso"` // não precisa somar 100

	Tarefas []Tarefa `gorm:"foreignKey:EtapaID;constraint:OnDelete:CASCADE" json:"tarefas"`
}

// Tarefa é uma unidade de trabalho definida no modelo. O comportamento
// vem dos flags explícitos (TipoAcao, ExigeRevisao), nunca do rótulo.
type Tarefa struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EtapaID uint   `gorm:"not null;index;uniqueIndex:idx_tarefa_etapa_chave" json:"etapaId"`
	Chave   string `gorm:"size:100;not null;uniqueIndex:idx_tarefa_etapa_chave" json:"chave"`
	Rotulo  string `gorm:"size:255;not null" json:"rotulo"`

	PapelResponsavel string `gorm:"size:20;not null;default:cliente" json:"papelResponsavel"` // "cliente" | "admin"
	Visibilidade     string `gorm:"size:20;not null;default:todos" json:"visibilidade"`       // "todos" | "admin"
	TipoAcao         string `gorm:"size:20;not null;default:interna" json:"tipoAcao"`         // "upload" | "interna"
	ExigeRevisao     bool   `json:"exigeRevisao"`
	ExigeEvidencia   bool   `json:"exigeEvidencia"`

	Repetivel      bool   `json:"repetivel"`
	GrupoRepeticao string `gorm:"size:100" json:"grupoRepeticao,omitempty"`
}

// Item é a instância de uma tarefa para uma venda. Para tarefas
// repetíveis há um item por índice de grupo; IndiceGrupo fica 0 nas
// tarefas comuns. Itens nunca são apagados de verdade (soft delete),
// preservando o histórico de submissões.
type Item struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	TarefaID    uint `gorm:"not null;uniqueIndex:idx_item_tarefa_venda_grupo" json:"tarefaId"`
	VendaID     uint `gorm:"not null;index;uniqueIndex:idx_item_tarefa_venda_grupo" json:"vendaId"`
	IndiceGrupo int  `gorm:"not null;default:0;uniqueIndex:idx_item_tarefa_venda_grupo" json:"indiceGrupo"`

	Estado string `gorm:"size:30;not null" json:"estado"`
	// Trava otimista: toda mutação de estado compara e incrementa
	Versao int `gorm:"not null;default:0" json:"versao"`

	Tarefa Tarefa  `gorm:"foreignKey:TarefaID" json:"tarefa"`
	Anexos []Anexo `gorm:"foreignKey:ItemID" json:"anexos"`
}

// Anexo é o registro de revisão de um documento submetido num item.
// Anexos rejeitados ficam guardados para auditoria, nunca são apagados.
type Anexo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ItemID      uint   `gorm:"not null;index" json:"itemId"`
	DocumentoID string `gorm:"size:36;not null" json:"documentoId"`

	Status      string `gorm:"size:20;not null;default:pendente" json:"status"` // "pendente" | "aprovado" | "rejeitado"
	Observacao  string `json:"observacao"`
	RevisadoPor uint   `json:"revisadoPor,omitempty"`
	Versao      int    `gorm:"not null;default:0" json:"versao"`
}

// Migrate registra as entidades do checklist no AutoMigrate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Modelo{}, &Etapa{}, &Tarefa{}, &Item{}, &Anexo{})
}
