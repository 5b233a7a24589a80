package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/s1amese2003/RecycleMind/internal/model/entity"
	"github.com/s1amese2003/RecycleMind/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 允许执行完工操作的角色
var completeRoles = map[string]bool{
	"admin":   true,
	"manager": true,
}

// ProductionService 生产计划生命周期
// PENDING_APPROVAL -> APPROVED -> COMPLETED；库存只在审批事务中扣减
type ProductionService struct {
	planRepo     *repository.ProductionPlanRepository
	materialRepo *repository.MaterialRepository
	db           *gorm.DB
	logger       *zap.Logger
}

func NewProductionService(planRepo *repository.ProductionPlanRepository, materialRepo *repository.MaterialRepository, db *gorm.DB, logger *zap.Logger) *ProductionService {
	return &ProductionService{
		planRepo:     planRepo,
		materialRepo: materialRepo,
		db:           db,
		logger:       logger,
	}
}

type SubmitRecipeItem struct {
	MaterialID uint    `json:"material_id" binding:"required"`
	Percentage float64 `json:"percentage" binding:"required,gt=0"`
}

type SubmitPlanRequest struct {
	ProductName  string             `json:"product_name" binding:"required"`
	TargetAmount float64            `json:"target_amount" binding:"required,gt=0"`
	Recipe       []SubmitRecipeItem `json:"recipe" binding:"required,min=1"`
	Operator     string             `json:"operator"`
	Notes        string             `json:"notes"`
}

// Submit 将配方提交为待审批计划，解析绝对投料量快照，不动库存
func (s *ProductionService) Submit(req SubmitPlanRequest) (*entity.ProductionPlan, error) {
	ids := make([]uint, 0, len(req.Recipe))
	for _, item := range req.Recipe {
		ids = append(ids, item.MaterialID)
	}
	materials, err := s.materialRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("读取废料信息失败: %w", err)
	}
	byID := make(map[uint]entity.Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	var snapshot entity.PlanMaterials
	var totalCost float64
	for _, item := range req.Recipe {
		m, ok := byID[item.MaterialID]
		if !ok {
			return nil, fmt.Errorf("配方引用的废料不存在: id=%d", item.MaterialID)
		}
		weight := req.TargetAmount * item.Percentage / 100
		cost := weight * m.UnitPrice
		totalCost += cost
		snapshot = append(snapshot, entity.PlanMaterial{
			MaterialID:  m.ID,
			Name:        m.Name,
			StorageArea: m.StorageArea,
			Percentage:  item.Percentage,
			Weight:      weight,
			Cost:        cost,
		})
	}

	now := time.Now()
	plan := &entity.ProductionPlan{
		ID:            uuid.New().String(),
		PlanCode:      fmt.Sprintf("PP-%s%04d", now.Format("20060102"), now.UnixNano()%10000),
		ProductName:   req.ProductName,
		TargetAmount:  req.TargetAmount,
		Status:        entity.PlanStatusPendingApproval,
		MaterialsUsed: snapshot,
		TotalCost:     totalCost,
		Operator:      req.Operator,
		Notes:         req.Notes,
	}
	if err := s.planRepo.Create(plan); err != nil {
		return nil, fmt.Errorf("创建生产计划失败: %w", err)
	}
	return plan, nil
}

// Approve 审批计划并原子扣减库存
// 计划行与所有涉及的库存行先按固定顺序加排他锁，再做充足性检查，
// 任一不足则整体回滚，计划保持待审批
func (s *ProductionService) Approve(planID, approver string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		plan, err := s.planRepo.LockByID(tx, planID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlanNotFound
			}
			return fmt.Errorf("读取生产计划失败: %w", err)
		}
		if plan.Status != entity.PlanStatusPendingApproval {
			return fmt.Errorf("%w: 当前状态 %s", ErrInvalidStateTransition, plan.Status)
		}
		if len(plan.MaterialsUsed) == 0 {
			return fmt.Errorf("生产计划缺少物料快照: %s", plan.ID)
		}

		ids := make([]uint, 0, len(plan.MaterialsUsed))
		for _, pm := range plan.MaterialsUsed {
			ids = append(ids, pm.MaterialID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		locked, err := s.materialRepo.LockByIDs(tx, ids)
		if err != nil {
			return fmt.Errorf("锁定库存失败: %w", err)
		}
		byID := make(map[uint]entity.Material, len(locked))
		for _, m := range locked {
			byID[m.ID] = m
		}

		// 全部加锁后再做检查，检查全部通过后再扣减
		for _, pm := range plan.MaterialsUsed {
			m, ok := byID[pm.MaterialID]
			if !ok {
				return fmt.Errorf("计划引用的废料不存在: %s (id=%d)", pm.Name, pm.MaterialID)
			}
			if m.StockKg < pm.Weight {
				return &InsufficientStockError{
					MaterialID: m.ID,
					Material:   m.Name,
					Needed:     pm.Weight,
					Available:  m.StockKg,
				}
			}
		}

		now := time.Now()
		for _, pm := range plan.MaterialsUsed {
			if err := s.materialRepo.DebitStock(tx, pm.MaterialID, pm.Weight); err != nil {
				return fmt.Errorf("扣减库存失败: %w", err)
			}
			st := &entity.StockTransaction{
				ID:              uuid.New().String(),
				MaterialID:      pm.MaterialID,
				MaterialName:    pm.Name,
				TransactionType: entity.TxTypeProductionOut,
				Quantity:        -pm.Weight,
				ReferenceType:   "PLAN",
				ReferenceID:     plan.ID,
				ReferenceCode:   plan.PlanCode,
				CreatedBy:       approver,
			}
			if err := s.planRepo.CreateStockTransaction(tx, st); err != nil {
				return fmt.Errorf("记录库存交易失败: %w", err)
			}
		}

		plan.Status = entity.PlanStatusApproved
		plan.Approver = approver
		plan.ApprovedAt = &now
		if err := tx.Save(plan).Error; err != nil {
			return fmt.Errorf("更新计划状态失败: %w", err)
		}

		s.logger.Info("生产计划审批通过",
			zap.String("plan_id", plan.ID),
			zap.String("plan_code", plan.PlanCode),
			zap.String("approver", approver),
		)
		return nil
	})
}

// Complete 完工：记录实际产出，生成生产记录，不再动库存
func (s *ProductionService) Complete(planID, role, operator string, actualAmount float64) error {
	if !completeRoles[role] {
		return ErrUnauthorized
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		plan, err := s.planRepo.LockByID(tx, planID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlanNotFound
			}
			return fmt.Errorf("读取生产计划失败: %w", err)
		}
		if plan.Status != entity.PlanStatusApproved {
			return fmt.Errorf("%w: 当前状态 %s", ErrInvalidStateTransition, plan.Status)
		}

		now := time.Now()
		plan.Status = entity.PlanStatusCompleted
		plan.ActualAmount = actualAmount
		plan.CompletedAt = &now
		if err := tx.Save(plan).Error; err != nil {
			return fmt.Errorf("更新计划状态失败: %w", err)
		}

		finalYield := 0.0
		if plan.TargetAmount > 0 {
			finalYield = actualAmount / plan.TargetAmount * 100
		}
		record := &entity.ProductionRecord{
			ID:           uuid.New().String(),
			PlanID:       plan.ID,
			PlanCode:     plan.PlanCode,
			ProductName:  plan.ProductName,
			TargetAmount: plan.TargetAmount,
			ActualAmount: actualAmount,
			FinalYield:   finalYield,
			Unit:         "kg",
			Materials:    plan.MaterialsUsed,
			Operator:     operator,
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("创建生产记录失败: %w", err)
		}
		return nil
	})
}

func (s *ProductionService) GetByID(id string) (*entity.ProductionPlan, error) {
	plan, err := s.planRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *ProductionService) List(params repository.PlanListParams) ([]entity.ProductionPlan, int64, error) {
	return s.planRepo.List(params)
}

func (s *ProductionService) ListRecords(page, size int) ([]entity.ProductionRecord, int64, error) {
	return s.planRepo.ListRecords(page, size)
}
