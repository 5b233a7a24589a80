package repository

import (
	"github.com/s1amese2003/RecycleMind/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// ListAvailable 获取有库存的废料（配方计算的候选集）
func (r *MaterialRepository) ListAvailable() ([]entity.Material, error) {
	var items []entity.Material
	err := r.db.Where("stock_kg > 0 AND deleted_at IS NULL").
		Order("id ASC").Find(&items).Error
	return items, err
}

func (r *MaterialRepository) GetByID(id uint) (*entity.Material, error) {
	var m entity.Material
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&m).Error
	return &m, err
}

func (r *MaterialRepository) GetByIDs(ids []uint) ([]entity.Material, error) {
	var items []entity.Material
	err := r.db.Where("id IN ? AND deleted_at IS NULL", ids).
		Order("id ASC").Find(&items).Error
	return items, err
}

// LockByIDs 在事务内按 id 升序对库存行加排他锁
// 固定的加锁顺序避免并发审批之间的死锁
func (r *MaterialRepository) LockByIDs(tx *gorm.DB, ids []uint) ([]entity.Material, error) {
	var items []entity.Material
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ? AND deleted_at IS NULL", ids).
		Order("id ASC").Find(&items).Error
	return items, err
}

// DebitStock 在事务内扣减库存。库存只允许通过审批事务扣减。
func (r *MaterialRepository) DebitStock(tx *gorm.DB, id uint, amount float64) error {
	return tx.Model(&entity.Material{}).
		Where("id = ?", id).
		Update("stock_kg", gorm.Expr("stock_kg - ?", amount)).Error
}

func (r *MaterialRepository) Update(m *entity.Material) error {
	return r.db.Save(m).Error
}

func (r *MaterialRepository) Create(m *entity.Material) error {
	return r.db.Create(m).Error
}

// DB 返回底层db用于事务
func (r *MaterialRepository) DB() *gorm.DB {
	return r.db
}
