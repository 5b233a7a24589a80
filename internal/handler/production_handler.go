package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/s1amese2003/RecycleMind/internal/repository"
	"github.com/s1amese2003/RecycleMind/internal/service"
)

type ProductionHandler struct {
	svc *service.ProductionService
}

func NewProductionHandler(svc *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

// Submit 提交生产计划（待审批）
func (h *ProductionHandler) Submit(c *gin.Context) {
	var req service.SubmitPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	plan, err := h.svc.Submit(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"plan_id": plan.ID, "plan_code": plan.PlanCode}})
}

type approveRequest struct {
	Approver string `json:"approver" binding:"required"`
}

// Approve 审批计划并扣减库存
func (h *ProductionHandler) Approve(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	if err := h.svc.Approve(c.Param("id"), req.Approver); err != nil {
		status, code := lifecycleErrorStatus(err)
		c.JSON(status, gin.H{"code": code, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

type completeRequest struct {
	ActualAmount float64 `json:"actual_amount" binding:"required,gt=0"`
	Role         string  `json:"role" binding:"required"`
	Operator     string  `json:"operator"`
}

// Complete 完工，记录实际产出
func (h *ProductionHandler) Complete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	if err := h.svc.Complete(c.Param("id"), req.Role, req.Operator, req.ActualAmount); err != nil {
		status, code := lifecycleErrorStatus(err)
		c.JSON(status, gin.H{"code": code, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

func (h *ProductionHandler) Get(c *gin.Context) {
	plan, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		status, code := lifecycleErrorStatus(err)
		c.JSON(status, gin.H{"code": code, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": plan})
}

func (h *ProductionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	params := repository.PlanListParams{
		Status:  c.Query("status"),
		Keyword: c.Query("keyword"),
		Page:    page,
		Size:    size,
	}
	plans, total, err := h.svc.List(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": plans, "total": total, "page": page, "size": size}})
}

func (h *ProductionHandler) ListRecords(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	records, total, err := h.svc.ListRecords(page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": records, "total": total, "page": page, "size": size}})
}

// lifecycleErrorStatus 生命周期错误类别到HTTP状态的映射
func lifecycleErrorStatus(err error) (int, int) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		return http.StatusNotFound, 10002
	case errors.Is(err, service.ErrInvalidStateTransition):
		return http.StatusConflict, 40901
	case errors.Is(err, service.ErrInsufficientStock):
		return http.StatusConflict, 40902
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden, 40301
	default:
		return http.StatusInternalServerError, 50001
	}
}
