package repository

import (
	"github.com/s1amese2003/RecycleMind/internal/model/entity"
	"gorm.io/gorm"
)

// ProductRepository 产品档案（成分要求预设），只读
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List() ([]entity.Product, error) {
	var items []entity.Product
	err := r.db.Order("id ASC").Find(&items).Error
	return items, err
}

func (r *ProductRepository) GetByID(id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.db.First(&p, id).Error
	return &p, err
}
