package venda

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, v *Venda) error
	ListarPorCorretor(db *gorm.DB, corretorID uint) ([]Venda, error)
	ListarPorCliente(db *gorm.DB, clienteID uint) ([]Venda, error)
	BuscarPorID(db *gorm.DB, id uint) (*Venda, error)
	Atualizar(db *gorm.DB, v *Venda) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, v *Venda) error {
	return db.Create(v).Error
}

func (r *repositoryImpl) ListarPorCorretor(db *gorm.DB, corretorID uint) ([]Venda, error) {
	var list []Venda
	err := db.
		Where("corretor_id = ?", corretorID).
		Preload("Apolices").
		Preload("Comentarios").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorCliente(db *gorm.DB, clienteID uint) ([]Venda, error) {
	var list []Venda
	err := db.
		Where("cliente_id = ?", clienteID).
		Preload("Apolices").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Venda, error) {
	var v Venda
	err := db.
		Preload("Apolices").
		Preload("Comentarios").
		First(&v, id).Error
	return &v, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, v *Venda) error {
	return db.Save(v).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Venda{}, id).Error
}
