package optimizer

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRequirement 未提供任何成分要求
	ErrEmptyRequirement = errors.New("产品需求参数不能为空")
	// ErrNoCandidateMaterials 过滤后没有可用候选废料
	ErrNoCandidateMaterials = errors.New("没有可用的候选废料，无法进行计算")
	// ErrInfeasible 约束无法同时满足
	ErrInfeasible = errors.New("无法找到满足条件的配方，请检查产品要求或废料库存")
	// ErrEmptyRecipe 求解结果过滤后为空
	ErrEmptyRecipe = errors.New("计算得到的总投入量为0，无法生成有效配方")
	// ErrInvalidFixedQuantity 指定投料请求不合法
	ErrInvalidFixedQuantity = errors.New("指定投料请求不合法")
)

// FixedQuantityError 指定投料量超过库存
type FixedQuantityError struct {
	MaterialID uint
	Name       string
	Amount     float64
	StockKg    float64
}

func (e *FixedQuantityError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("指定投料的废料不存在: id=%d", e.MaterialID)
	}
	return fmt.Sprintf("指定投料超过库存: %s (指定 %.2f kg, 库存 %.2f kg)", e.Name, e.Amount, e.StockKg)
}

func (e *FixedQuantityError) Unwrap() error {
	return ErrInvalidFixedQuantity
}
