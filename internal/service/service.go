package service

import (
	"github.com/redis/go-redis/v9"
	"github.com/s1amese2003/RecycleMind/internal/optimizer"
	"github.com/s1amese2003/RecycleMind/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services 服务集合
type Services struct {
	Recipe     *RecipeService
	Production *ProductionService
}

func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, engine *optimizer.Engine, logger *zap.Logger) *Services {
	return &Services{
		Recipe:     NewRecipeService(repos.Material, repos.Product, engine, rdb, logger),
		Production: NewProductionService(repos.Plan, repos.Material, db, logger),
	}
}
