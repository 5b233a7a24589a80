package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// ProductionPlanStatus 生产计划状态
const (
	PlanStatusPendingApproval = "PENDING_APPROVAL"
	PlanStatusApproved        = "APPROVED"
	PlanStatusCompleted       = "COMPLETED"
)

// PlanMaterial 计划物料快照条目：计划创建时根据配方解析出的绝对重量
type PlanMaterial struct {
	MaterialID  uint    `json:"material_id"`
	Name        string  `json:"name"`
	StorageArea string  `json:"storage_area"`
	Percentage  float64 `json:"percentage"`
	Weight      float64 `json:"weight"` // kg
	Cost        float64 `json:"cost"`
}

// PlanMaterials 物料快照（JSONB，创建后只读）
type PlanMaterials []PlanMaterial

func (p PlanMaterials) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *PlanMaterials) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, p)
}

// ProductionPlan 生产计划
// 状态机：PENDING_APPROVAL -> APPROVED -> COMPLETED
// 审批是唯一允许扣减库存的入口
type ProductionPlan struct {
	ID            string        `json:"id" gorm:"primaryKey;size:36"`
	PlanCode      string        `json:"plan_code" gorm:"size:50;not null;uniqueIndex"`
	ProductName   string        `json:"product_name" gorm:"size:128;not null"`
	TargetAmount  float64       `json:"target_amount" gorm:"type:decimal(12,4);not null"` // kg
	Status        string        `json:"status" gorm:"size:20;not null;default:PENDING_APPROVAL"`
	MaterialsUsed PlanMaterials `json:"materials_used" gorm:"type:jsonb"`
	TotalCost     float64       `json:"total_cost" gorm:"type:decimal(12,2);default:0"`
	Operator      string        `json:"operator" gorm:"size:64"`
	Approver      string        `json:"approver" gorm:"size:64"`
	ApprovedAt    *time.Time    `json:"approved_at"`
	ActualAmount  float64       `json:"actual_amount" gorm:"type:decimal(12,4);default:0"`
	CompletedAt   *time.Time    `json:"completed_at"`
	Notes         string        `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (ProductionPlan) TableName() string {
	return "production_plans"
}

// ProductionRecord 生产记录：计划完工时生成的审计记录
type ProductionRecord struct {
	ID           string        `json:"id" gorm:"primaryKey;size:36"`
	PlanID       string        `json:"plan_id" gorm:"size:36;not null;index"`
	PlanCode     string        `json:"plan_code" gorm:"size:50"`
	ProductName  string        `json:"product_name" gorm:"size:128;not null"`
	TargetAmount float64       `json:"target_amount" gorm:"type:decimal(12,4)"`
	ActualAmount float64       `json:"actual_amount" gorm:"type:decimal(12,4);not null"`
	FinalYield   float64       `json:"final_yield" gorm:"type:decimal(7,4)"` // 实际产出 / 计划投入（%）
	Unit         string        `json:"unit" gorm:"size:16;default:kg"`
	Materials    PlanMaterials `json:"materials" gorm:"type:jsonb"`
	Operator     string        `json:"operator" gorm:"size:64"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (ProductionRecord) TableName() string {
	return "production_records"
}

// StockTransactionType 库存交易类型
const (
	TxTypeProductionOut = "PRODUCTION_OUT" // 生产领料（审批扣减）
)

// StockTransaction 库存交易流水（负数表示出库）
type StockTransaction struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	MaterialID      uint      `json:"material_id" gorm:"not null;index"`
	MaterialName    string    `json:"material_name" gorm:"size:128"`
	TransactionType string    `json:"transaction_type" gorm:"size:20;not null"`
	Quantity        float64   `json:"quantity" gorm:"type:decimal(12,4);not null"`
	ReferenceType   string    `json:"reference_type" gorm:"size:20;not null"` // PLAN
	ReferenceID     string    `json:"reference_id" gorm:"size:64;not null"`
	ReferenceCode   string    `json:"reference_code" gorm:"size:50"`
	CreatedBy       string    `json:"created_by" gorm:"size:64"`
	CreatedAt       time.Time `json:"created_at"`
}

func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// AutoMigrate 自动迁移所有表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Material{},
		&Product{},
		&ProductionPlan{},
		&ProductionRecord{},
		&StockTransaction{},
	)
}
