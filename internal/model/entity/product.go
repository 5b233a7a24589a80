package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ElementRange 单个元素的成分允许范围（重量百分比）
type ElementRange struct {
	Element string  `json:"element"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// RequirementSpec 产品成分要求预设（JSONB）
// 与配方计算请求的 requirements 同构，前端可直接回填计算表单
type RequirementSpec struct {
	Elements       []ElementRange `json:"elements"`
	OthersMax      float64        `json:"others_max,omitempty"`
	TotalOthersMax float64        `json:"total_others_max,omitempty"`
}

func (r RequirementSpec) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *RequirementSpec) Scan(value interface{}) error {
	if value == nil {
		*r = RequirementSpec{}
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
	return json.Unmarshal(bytes, r)
}

// Product 产品档案：客户牌号与成分要求预设
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerName string          `json:"customer_name" gorm:"size:128;not null"`
	ModelNumber  string          `json:"model_number" gorm:"size:128;not null"`
	Category     string          `json:"category" gorm:"size:64"`
	Requirements RequirementSpec `json:"requirements" gorm:"type:jsonb"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
