package cliente

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Cliente) error
	ListarPorCorretor(db *gorm.DB, corretorID uint) ([]Cliente, error)
	BuscarPorID(db *gorm.DB, id uint) (*Cliente, error)
	BuscarPorEmail(db *gorm.DB, email string) (*Cliente, error)
	Atualizar(db *gorm.DB, c *Cliente) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Cliente) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) ListarPorCorretor(db *gorm.DB, corretorID uint) ([]Cliente, error) {
	var list []Cliente
	err := db.Where("corretor_id = ?", corretorID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cliente, error) {
	var c Cliente
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Cliente, error) {
	var c Cliente
	err := db.Where("email = ?", email).First(&c).Error
	return &c, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Cliente) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Cliente{}, id).Error
}
