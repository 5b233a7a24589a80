package repository

import "gorm.io/gorm"

// Repositories 仓库集合
type Repositories struct {
	Material *MaterialRepository
	Product  *ProductRepository
	Plan     *ProductionPlanRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Material: NewMaterialRepository(db),
		Product:  NewProductRepository(db),
		Plan:     NewProductionPlanRepository(db),
	}
}
