package optimizer

// ElementBound 单个元素的成分上下限（%）
type ElementBound struct {
	Element string  `json:"element" binding:"required"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Bound 通用上限约束（%）
type Bound struct {
	Max float64 `json:"max"`
}

// Requirement 产品成分要求
// 指定元素用显式列表表达，others/total_others 单独成字段，不与元素混在一个映射里
type Requirement struct {
	Elements    []ElementBound `json:"elements" binding:"required"`
	Others      *Bound         `json:"others,omitempty"`       // 单个未指定元素的上限
	TotalOthers *Bound         `json:"total_others,omitempty"` // 未指定元素合计上限
}

// Material 参与配料计算的废料视图
// Composition 已在数据访问层解码为类型化映射
type Material struct {
	ID          uint
	Name        string
	StorageArea string
	Composition map[string]float64
	StockKg     float64
	UnitPrice   float64
	YieldRate   float64 // 出水率（%）
}

// FixedAmount 指定投料：绕过优化、按字面重量强制进入配方
type FixedAmount struct {
	MaterialID uint    `json:"material_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"` // kg
}

// Request 一次配方计算请求
type Request struct {
	Requirement        Requirement   `json:"requirements"`
	ExcludedIDs        []uint        `json:"excluded_ids,omitempty"`
	FixedAmounts       []FixedAmount `json:"fixed_amount_materials,omitempty"`
	EnableSafetyMargin bool          `json:"enable_safety_margin,omitempty"`
	TargetAmount       float64       `json:"target_amount,omitempty"` // kg，默认 1000
}

// RecipeItem 配方条目
type RecipeItem struct {
	MaterialID  uint    `json:"material_id"`
	Name        string  `json:"name"`
	StorageArea string  `json:"storage_area"`
	Percentage  float64 `json:"percentage"` // 占批次质量（%），合计精确为 100.00
	Weight      float64 `json:"weight"`     // kg，按 target_amount 折算
	Cost        float64 `json:"cost"`
}

// Result 配方计算结果
type Result struct {
	Recipe           []RecipeItem       `json:"recipe"`
	TotalCost        float64            `json:"totalCost"`
	FinalComposition map[string]float64 `json:"finalComposition"`
}

// Model 交给求解器的线性规划模型：minimize Cost·x s.t. 约束，x >= 0
type Model struct {
	// 决策变量：每千克成品中来自候选废料 i 的原料投入量（kg）
	MaterialIDs []uint
	Cost        []float64 // 目标函数系数（采购单价）
	Constraints []Constraint
}

// Constraint 线性约束 Coeffs·x 的界；Equal 与 Min/Max 互斥
type Constraint struct {
	Name   string
	Coeffs []float64
	Equal  *float64
	Min    *float64
	Max    *float64
}

// Solution 求解结果
type Solution struct {
	Feasible bool
	Values   []float64 // 与 Model.MaterialIDs 对齐
}
