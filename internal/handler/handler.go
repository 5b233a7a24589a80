package handler

import "github.com/s1amese2003/RecycleMind/internal/service"

// Handlers HTTP处理器集合
type Handlers struct {
	Recipe     *RecipeHandler
	Production *ProductionHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Recipe:     NewRecipeHandler(services.Recipe),
		Production: NewProductionHandler(services.Production),
	}
}
