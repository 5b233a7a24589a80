package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/s1amese2003/RecycleMind/internal/model/entity"
	"github.com/s1amese2003/RecycleMind/internal/optimizer"
	"github.com/s1amese2003/RecycleMind/internal/service"
)

type RecipeHandler struct {
	svc *service.RecipeService
}

func NewRecipeHandler(svc *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{svc: svc}
}

type materialView struct {
	entity.Material
	ActualUnitPrice float64 `json:"actual_unit_price"` // 采购单价 / 出水率
}

// ListMaterials 配方计算候选废料列表
func (h *RecipeHandler) ListMaterials(c *gin.Context) {
	items, err := h.svc.ListMaterials()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	views := make([]materialView, len(items))
	for i, m := range items {
		views[i] = materialView{Material: m, ActualUnitPrice: m.ActualUnitPrice()}
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": views, "total": len(views)}})
}

// ListProducts 产品成分要求预设列表
func (h *RecipeHandler) ListProducts(c *gin.Context) {
	items, err := h.svc.ListProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": items, "total": len(items)}})
}

// Calculate 配方计算
func (h *RecipeHandler) Calculate(c *gin.Context) {
	var req optimizer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}

	result, err := h.svc.Calculate(c.Request.Context(), req)
	if err != nil {
		status, code := calculateErrorStatus(err)
		c.JSON(status, gin.H{"code": code, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": result})
}

// calculateErrorStatus 将引擎错误类别映射为HTTP状态
// 不可行原样上报给调用方，不重试
func calculateErrorStatus(err error) (int, int) {
	switch {
	case errors.Is(err, optimizer.ErrEmptyRequirement),
		errors.Is(err, optimizer.ErrInvalidFixedQuantity):
		return http.StatusBadRequest, 10001
	case errors.Is(err, optimizer.ErrNoCandidateMaterials),
		errors.Is(err, optimizer.ErrInfeasible),
		errors.Is(err, optimizer.ErrEmptyRecipe):
		return http.StatusUnprocessableEntity, 50002
	default:
		return http.StatusInternalServerError, 50001
	}
}
