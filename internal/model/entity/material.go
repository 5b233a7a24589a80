package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ElementMap 元素成分映射（元素符号 -> 重量百分比 0-100）
// 存储为 PostgreSQL JSONB，在数据访问层一次性解码，热路径不再反序列化
type ElementMap map[string]float64

func (m ElementMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *ElementMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
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
	return json.Unmarshal(bytes, m)
}

// Material 废料实体
type Material struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"size:128;not null;uniqueIndex"`
	StorageArea string     `json:"storage_area" gorm:"size:64"`
	Composition ElementMap `json:"composition" gorm:"type:jsonb"`
	StockKg     float64    `json:"stock_kg" gorm:"type:decimal(15,4);not null;default:0"`
	UnitPrice   float64    `json:"unit_price" gorm:"type:decimal(12,4);not null;default:0"`
	YieldRate   float64    `json:"yield_rate" gorm:"type:decimal(5,2);not null;default:100"` // 出水率（%）
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at" gorm:"index"`
}

func (Material) TableName() string {
	return "waste_materials"
}

// ActualUnitPrice 实际单价 = 采购单价 / 出水率
func (m *Material) ActualUnitPrice() float64 {
	if m.YieldRate <= 0 {
		return m.UnitPrice
	}
	return m.UnitPrice / (m.YieldRate / 100)
}
