package apolice

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, a *Apolice) error
	BuscarPorVenda(db *gorm.DB, vendaID uint) (*Apolice, error)
	ListarPorCorretor(db *gorm.DB, corretorID uint) ([]Apolice, error)
	Atualizar(db *gorm.DB, a *Apolice) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, a *Apolice) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) BuscarPorVenda(db *gorm.DB, vendaID uint) (*Apolice, error) {
	var a Apolice
	err := db.Where("venda_id = ?", vendaID).First(&a).Error
	return &a, err
}

func (r *repositoryImpl) ListarPorCorretor(db *gorm.DB, corretorID uint) ([]Apolice, error) {
	var list []Apolice
	err := db.Where("corretor_id = ?", corretorID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, a *Apolice) error {
	return db.Save(a).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Apolice{}, id).Error
}
