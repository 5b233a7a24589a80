package repository

import (
	"github.com/s1amese2003/RecycleMind/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductionPlanRepository struct {
	db *gorm.DB
}

func NewProductionPlanRepository(db *gorm.DB) *ProductionPlanRepository {
	return &ProductionPlanRepository{db: db}
}

func (r *ProductionPlanRepository) Create(plan *entity.ProductionPlan) error {
	return r.db.Create(plan).Error
}

func (r *ProductionPlanRepository) GetByID(id string) (*entity.ProductionPlan, error) {
	var plan entity.ProductionPlan
	err := r.db.Where("id = ?", id).First(&plan).Error
	return &plan, err
}

// LockByID 在事务内对计划行加排他锁，防止并发重复审批
func (r *ProductionPlanRepository) LockByID(tx *gorm.DB, id string) (*entity.ProductionPlan, error) {
	var plan entity.ProductionPlan
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&plan).Error
	return &plan, err
}

func (r *ProductionPlanRepository) Update(plan *entity.ProductionPlan) error {
	return r.db.Save(plan).Error
}

type PlanListParams struct {
	Status  string
	Keyword string
	Page    int
	Size    int
}

func (r *ProductionPlanRepository) List(params PlanListParams) ([]entity.ProductionPlan, int64, error) {
	query := r.db.Model(&entity.ProductionPlan{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("plan_code ILIKE ? OR product_name ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var plans []entity.ProductionPlan
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&plans).Error
	return plans, total, err
}

// CreateRecord 创建生产记录
func (r *ProductionPlanRepository) CreateRecord(record *entity.ProductionRecord) error {
	return r.db.Create(record).Error
}

func (r *ProductionPlanRepository) ListRecords(page, size int) ([]entity.ProductionRecord, int64, error) {
	query := r.db.Model(&entity.ProductionRecord{})
	var total int64
	query.Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var records []entity.ProductionRecord
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).Find(&records).Error
	return records, total, err
}

// CreateStockTransaction 在事务内记录库存交易流水
func (r *ProductionPlanRepository) CreateStockTransaction(tx *gorm.DB, st *entity.StockTransaction) error {
	return tx.Create(st).Error
}

// DB 返回底层db用于事务
func (r *ProductionPlanRepository) DB() *gorm.DB {
	return r.db
}
