package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/s1amese2003/RecycleMind/internal/model/entity"
	"github.com/s1amese2003/RecycleMind/internal/optimizer"
	"github.com/s1amese2003/RecycleMind/internal/repository"
	"go.uber.org/zap"
)

const recipeCacheTTL = 5 * time.Minute

// RecipeService 配方计算服务：取候选废料、调用优化引擎、缓存结果
// 引擎本身是纯函数，相同请求可以安全地命中缓存
type RecipeService struct {
	materialRepo *repository.MaterialRepository
	productRepo  *repository.ProductRepository
	engine       *optimizer.Engine
	rdb          *redis.Client // 可为 nil，此时不启用缓存
	logger       *zap.Logger
}

func NewRecipeService(materialRepo *repository.MaterialRepository, productRepo *repository.ProductRepository, engine *optimizer.Engine, rdb *redis.Client, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		materialRepo: materialRepo,
		productRepo:  productRepo,
		engine:       engine,
		rdb:          rdb,
		logger:       logger,
	}
}

// ListMaterials 配方计算页面的候选废料列表
func (s *RecipeService) ListMaterials() ([]entity.Material, error) {
	return s.materialRepo.ListAvailable()
}

// ListProducts 产品成分要求预设，用于回填计算表单
func (s *RecipeService) ListProducts() ([]entity.Product, error) {
	return s.productRepo.List()
}

// Calculate 执行配方计算
func (s *RecipeService) Calculate(ctx context.Context, req optimizer.Request) (*optimizer.Result, error) {
	materials, err := s.materialRepo.ListAvailable()
	if err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey(req, materials)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	candidates := make([]optimizer.Material, len(materials))
	for i, m := range materials {
		candidates[i] = optimizer.Material{
			ID:          m.ID,
			Name:        m.Name,
			StorageArea: m.StorageArea,
			Composition: m.Composition,
			StockKg:     m.StockKg,
			UnitPrice:   m.UnitPrice,
			YieldRate:   m.YieldRate,
		}
	}

	result, err := s.engine.Calculate(candidates, req)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, cacheKey, result)
	return result, nil
}

// cacheKey 请求与库存快照的摘要：库存变化自动使旧缓存失效
func (s *RecipeService) cacheKey(req optimizer.Request, materials []entity.Material) string {
	if s.rdb == nil {
		return ""
	}
	h := sha256.New()
	reqBytes, _ := json.Marshal(req)
	h.Write(reqBytes)
	for _, m := range materials {
		matBytes, _ := json.Marshal(struct {
			ID        uint
			Stock     float64
			Price     float64
			Yield     float64
			UpdatedAt time.Time
		}{m.ID, m.StockKg, m.UnitPrice, m.YieldRate, m.UpdatedAt})
		h.Write(matBytes)
	}
	return "recipe:calc:" + hex.EncodeToString(h.Sum(nil))
}

func (s *RecipeService) fromCache(ctx context.Context, key string) *optimizer.Result {
	if s.rdb == nil || key == "" {
		return nil
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var result optimizer.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	s.logger.Debug("配方计算命中缓存", zap.String("key", key))
	return &result
}

func (s *RecipeService) toCache(ctx context.Context, key string, result *optimizer.Result) {
	if s.rdb == nil || key == "" {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, recipeCacheTTL).Err(); err != nil {
		s.logger.Warn("写入配方缓存失败", zap.Error(err))
	}
}
