package service

import (
	"errors"
	"fmt"
)

var (
	// ErrPlanNotFound 计划不存在
	ErrPlanNotFound = errors.New("未找到指定的生产计划")
	// ErrInvalidStateTransition 当前状态不允许该操作
	ErrInvalidStateTransition = errors.New("计划状态不允许该操作")
	// ErrUnauthorized 角色无权执行该操作
	ErrUnauthorized = errors.New("无权执行该操作")
	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = errors.New("废料库存不足")
)

// InsufficientStockError 审批时发现的库存不足，整个事务回滚，计划保持待审批
type InsufficientStockError struct {
	MaterialID uint
	Material   string
	Needed     float64
	Available  float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("废料库存不足: %s (需要 %.2f kg, 现有 %.2f kg)", e.Material, e.Needed, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
