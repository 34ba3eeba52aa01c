package corretor

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Corretor) error
	ListarTodos(db *gorm.DB) ([]Corretor, error)
	BuscarPorID(db *gorm.DB, id uint) (*Corretor, error)
	BuscarPorEmail(db *gorm.DB, email string) (*Corretor, error)
	Atualizar(db *gorm.DB, c *Corretor) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Corretor) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Corretor, error) {
	var list []Corretor
	err := db.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Corretor, error) {
	var c Corretor
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Corretor, error) {
	var c Corretor
	err := db.Where("email = ?", email).First(&c).Error
	return &c, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Corretor) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Corretor{}, id).Error
}
