package checklist

import (
	"fmt"
	"testing"

	"github.com/PrimaSeguros/api-corretora/internal/documento"
	"github.com/PrimaSeguros/api-corretora/internal/venda"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func novoBancoTeste(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&venda.Venda{}, &documento.Documento{}))
	require.NoError(t, Migrate(db))
	return db
}

func criarVendaTeste(t *testing.T, db *gorm.DB, produto string) *venda.Venda {
	t.Helper()
	v := &venda.Venda{ClienteID: 10, CorretorID: 20, Produto: produto, Status: venda.StatusEmAndamento}
	require.NoError(t, db.Create(v).Error)
	return v
}

// Modelo mínimo nos moldes do cenário clássico: etapa A (peso 10, duas
// tarefas de upload do cliente) e etapa B (peso 20, uma tarefa interna).
func semearModeloTeste(t *testing.T, db *gorm.DB, produto string) *Modelo {
	t.Helper()
	m := &Modelo{
		Produto: produto,
		Versao:  1,
		Titulo:  "Checklist de teste",
		Status:  ModeloAtivo,
		Etapas: []Etapa{
			{
				Chave: "a", Rotulo: "Etapa A", Ordem: 1, Peso: 10,
				Tarefas: []Tarefa{
					{
						Chave: "doc-1", Rotulo: "Enviar documento 1",
						PapelResponsavel: ResponsavelCliente, Visibilidade: VisibilidadeTodos,
						TipoAcao: TipoAcaoUpload, ExigeRevisao: true,
					},
					{
						Chave: "doc-2", Rotulo: "Enviar documento 2",
						PapelResponsavel: ResponsavelCliente, Visibilidade: VisibilidadeTodos,
						TipoAcao: TipoAcaoUpload, ExigeRevisao: true,
					},
				},
			},
			{
				Chave: "b", Rotulo: "Etapa B", Ordem: 2, Peso: 20,
				Tarefas: []Tarefa{
					{
						Chave: "conferencia", Rotulo: "Conferência interna",
						PapelResponsavel: ResponsavelAdmin, Visibilidade: VisibilidadeAdmin,
						TipoAcao: TipoAcaoInterna,
					},
				},
			},
		},
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

// Modelo com grupo repetível "bens": uma tarefa de upload e uma interna
// por instância do grupo, mais uma tarefa fixa.
func semearModeloComGrupo(t *testing.T, db *gorm.DB, produto string) *Modelo {
	t.Helper()
	m := &Modelo{
		Produto: produto,
		Versao:  1,
		Titulo:  "Checklist com grupo",
		Status:  ModeloAtivo,
		Etapas: []Etapa{
			{
				Chave: "inventario", Rotulo: "Inventário", Ordem: 1, Peso: 50,
				Tarefas: []Tarefa{
					{
						Chave: "relacao-bens", Rotulo: "Relação de bens",
						PapelResponsavel: ResponsavelCliente, Visibilidade: VisibilidadeTodos,
						TipoAcao: TipoAcaoUpload, ExigeRevisao: true,
					},
					{
						Chave: "escritura", Rotulo: "Escritura do bem",
						PapelResponsavel: ResponsavelCliente, Visibilidade: VisibilidadeTodos,
						TipoAcao: TipoAcaoUpload, ExigeRevisao: true,
						Repetivel: true, GrupoRepeticao: "bens",
					},
					{
						Chave: "registro", Rotulo: "Registro do bem",
						PapelResponsavel: ResponsavelAdmin, Visibilidade: VisibilidadeAdmin,
						TipoAcao: TipoAcaoInterna,
						Repetivel: true, GrupoRepeticao: "bens",
					},
				},
			},
		},
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func itemDaTarefa(t *testing.T, db *gorm.DB, s *Service, vendaID uint, chave string, indice int) *Item {
	t.Helper()
	itens, err := s.Repo.ListarItens(db, vendaID)
	require.NoError(t, err)
	for i := range itens {
		if itens[i].Tarefa.Chave == chave && itens[i].IndiceGrupo == indice {
			return &itens[i]
		}
	}
	t.Fatalf("item da tarefa %q (índice %d) não encontrado", chave, indice)
	return nil
}

func docID() string { return uuid.NewString() }
