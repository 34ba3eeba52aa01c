package checklist

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CriarModelo(db *gorm.DB, m *Modelo) error
	ListarModelos(db *gorm.DB) ([]Modelo, error)
	BuscarModeloPorID(db *gorm.DB, id uint) (*Modelo, error)
	BuscarModeloAtivo(db *gorm.DB, produto string) (*Modelo, error)
	AtualizarStatusModelo(db *gorm.DB, id uint, status string) error

	CriarItens(db *gorm.DB, itens []Item) error
	ListarItens(db *gorm.DB, vendaID uint) ([]Item, error)
	BuscarItem(db *gorm.DB, id uint) (*Item, error)
	AtualizarEstadoItem(db *gorm.DB, itemID uint, versao int, novoEstado string) (bool, error)
	ForcarEstadoItem(db *gorm.DB, itemID uint, novoEstado string) error
	MaxIndiceGrupo(db *gorm.DB, vendaID uint, tarefaIDs []uint) (int, error)

	CriarAnexos(db *gorm.DB, anexos []Anexo) error
	BuscarAnexo(db *gorm.DB, id uint) (*Anexo, error)
	AnexosPendentes(db *gorm.DB, itemID uint) ([]Anexo, error)
	ResolverAnexo(db *gorm.DB, anexoID uint, versao int, status, observacao string, revisor uint) (bool, error)
	TemAnexoAprovado(db *gorm.DB, itemID uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) CriarModelo(db *gorm.DB, m *Modelo) error {
	return db.Create(m).Error
}

func (r *repositoryImpl) ListarModelos(db *gorm.DB) ([]Modelo, error) {
	var list []Modelo
	err := db.
		Preload("Etapas", func(db *gorm.DB) *gorm.DB { return db.Order("ordem ASC") }).
		Preload("Etapas.Tarefas").
		Order("produto ASC, versao DESC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarModeloPorID(db *gorm.DB, id uint) (*Modelo, error) {
	var m Modelo
	err := db.
		Preload("Etapas", func(db *gorm.DB) *gorm.DB { return db.Order("ordem ASC") }).
		Preload("Etapas.Tarefas").
		First(&m, id).Error
	return &m, err
}

func (r *repositoryImpl) BuscarModeloAtivo(db *gorm.DB, produto string) (*Modelo, error) {
	var m Modelo
	err := db.
		Preload("Etapas", func(db *gorm.DB) *gorm.DB { return db.Order("ordem ASC") }).
		Preload("Etapas.Tarefas").
		Where("produto = ? AND status = ?", produto, ModeloAtivo).
		Order("versao DESC").
		First(&m).Error
	return &m, err
}

func (r *repositoryImpl) AtualizarStatusModelo(db *gorm.DB, id uint, status string) error {
	return db.Model(&Modelo{}).Where("id = ?", id).Update("status", status).Error
}

// CriarItens ignora conflitos na chave (tarefa, venda, indice_grupo):
// é o que torna o "garantir" idempotente mesmo sob corrida.
func (r *repositoryImpl) CriarItens(db *gorm.DB, itens []Item) error {
	if len(itens) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&itens).Error
}

func (r *repositoryImpl) ListarItens(db *gorm.DB, vendaID uint) ([]Item, error) {
	var itens []Item
	err := db.
		Preload("Tarefa").
		Preload("Anexos", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("venda_id = ?", vendaID).
		Order("id ASC").
		Find(&itens).Error
	return itens, err
}

func (r *repositoryImpl) BuscarItem(db *gorm.DB, id uint) (*Item, error) {
	var item Item
	err := db.
		Preload("Tarefa").
		Preload("Anexos", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&item, id).Error
	return &item, err
}

// AtualizarEstadoItem aplica a trava otimista: só grava se a versão
// lida ainda for a corrente. Retorna false quando outro escritor venceu.
func (r *repositoryImpl) AtualizarEstadoItem(db *gorm.DB, itemID uint, versao int, novoEstado string) (bool, error) {
	res := db.Model(&Item{}).
		Where("id = ? AND versao = ?", itemID, versao).
		Updates(map[string]interface{}{"estado": novoEstado, "versao": versao + 1})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ForcarEstadoItem grava sem pré-condição de versão. Usado pela
// submissão: dois uploads concorrentes convergem para em_revisao e
// nenhum pode ser perdido por causa da trava.
func (r *repositoryImpl) ForcarEstadoItem(db *gorm.DB, itemID uint, novoEstado string) error {
	return db.Model(&Item{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{"estado": novoEstado, "versao": gorm.Expr("versao + 1")}).Error
}

func (r *repositoryImpl) MaxIndiceGrupo(db *gorm.DB, vendaID uint, tarefaIDs []uint) (int, error) {
	var max *int
	err := db.Model(&Item{}).
		Where("venda_id = ? AND tarefa_id IN ?", vendaID, tarefaIDs).
		Select("MAX(indice_grupo)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

func (r *repositoryImpl) CriarAnexos(db *gorm.DB, anexos []Anexo) error {
	if len(anexos) == 0 {
		return nil
	}
	return db.Create(&anexos).Error
}

func (r *repositoryImpl) BuscarAnexo(db *gorm.DB, id uint) (*Anexo, error) {
	var a Anexo
	err := db.First(&a, id).Error
	return &a, err
}

func (r *repositoryImpl) AnexosPendentes(db *gorm.DB, itemID uint) ([]Anexo, error) {
	var list []Anexo
	err := db.
		Where("item_id = ? AND status = ?", itemID, RevisaoPendente).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

// ResolverAnexo grava a decisão com trava otimista; false quando a
// versão já mudou (outro revisor decidiu primeiro).
func (r *repositoryImpl) ResolverAnexo(db *gorm.DB, anexoID uint, versao int, status, observacao string, revisor uint) (bool, error) {
	res := db.Model(&Anexo{}).
		Where("id = ? AND versao = ?", anexoID, versao).
		Updates(map[string]interface{}{
			"status":       status,
			"observacao":   observacao,
			"revisado_por": revisor,
			"versao":       versao + 1,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repositoryImpl) TemAnexoAprovado(db *gorm.DB, itemID uint) (bool, error) {
	var count int64
	err := db.Model(&Anexo{}).
		Where("item_id = ? AND status = ?", itemID, RevisaoAprovada).
		Count(&count).Error
	return count > 0, err
}
