package produto

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, p *Produto) error
	ListarAtivos(db *gorm.DB) ([]Produto, error)
	BuscarPorTipo(db *gorm.DB, tipo string) (*Produto, error)
	Atualizar(db *gorm.DB, p *Produto) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, p *Produto) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) ListarAtivos(db *gorm.DB) ([]Produto, error) {
	var list []Produto
	err := db.Where("ativo = ?", true).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorTipo(db *gorm.DB, tipo string) (*Produto, error) {
	var p Produto
	err := db.Where("tipo = ?", tipo).First(&p).Error
	return &p, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, p *Produto) error {
	return db.Save(p).Error
}
