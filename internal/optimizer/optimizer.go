// Package optimizer 实现配料优化引擎：
// 将产品成分要求与废料库存转化为线性规划模型，求解出成本最低的配方。
package optimizer

const (
	// DefaultSafetyMargin 安全边际：区间宽度的收缩比例
	DefaultSafetyMargin = 0.05
	// DefaultEpsilon 噪声级投入过滤阈值（每千克成品的原料千克数）
	DefaultEpsilon = 0.001
	// DefaultTargetAmount 默认批次大小（kg）
	DefaultTargetAmount = 1000
)

// Options 引擎参数
type Options struct {
	SafetyMargin  float64
	Epsilon       float64
	DefaultTarget float64
}

// Engine 配料优化引擎。纯计算，无共享可变状态，可并发使用。
type Engine struct {
	solver Solver
	opts   Options
}

func NewEngine(solver Solver, opts Options) *Engine {
	if opts.SafetyMargin <= 0 {
		opts.SafetyMargin = DefaultSafetyMargin
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = DefaultEpsilon
	}
	if opts.DefaultTarget <= 0 {
		opts.DefaultTarget = DefaultTargetAmount
	}
	return &Engine{solver: solver, opts: opts}
}

// Calculate 执行一次配方计算：
// 候选过滤 -> 指定投料预计算 -> 元素集合解析 -> 建模 -> 求解 -> 归一化
func (e *Engine) Calculate(materials []Material, req Request) (*Result, error) {
	if len(req.Requirement.Elements) == 0 && req.Requirement.Others == nil && req.Requirement.TotalOthers == nil {
		return nil, ErrEmptyRequirement
	}
	if req.TargetAmount <= 0 {
		req.TargetAmount = e.opts.DefaultTarget
	}

	byID := make(map[uint]Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	excluded := make(map[uint]bool, len(req.ExcludedIDs))
	for _, id := range req.ExcludedIDs {
		excluded[id] = true
	}
	fixedIDs := make(map[uint]bool, len(req.FixedAmounts))
	for _, f := range req.FixedAmounts {
		fixedIDs[f.MaterialID] = true
	}

	var candidates []Material
	for _, m := range materials {
		if m.StockKg <= 0 || excluded[m.ID] || fixedIDs[m.ID] {
			continue
		}
		candidates = append(candidates, m)
	}
	if len(candidates) == 0 && len(req.FixedAmounts) == 0 {
		return nil, ErrNoCandidateMaterials
	}

	fp, err := runFixedPass(req.FixedAmounts, byID, req.TargetAmount)
	if err != nil {
		return nil, err
	}

	var solved []float64
	if len(candidates) > 0 {
		inScope := make([]Material, 0, len(candidates)+len(fp.entries))
		inScope = append(inScope, candidates...)
		for _, f := range fp.entries {
			inScope = append(inScope, f.material)
		}
		specified, others := ResolveElementSets(req.Requirement, inScope)

		model := BuildModel(candidates, req, specified, others, fp, e.opts.SafetyMargin)
		sol, err := e.solver.Solve(model)
		if err != nil {
			return nil, err
		}
		if !sol.Feasible {
			return nil, ErrInfeasible
		}
		solved = sol.Values
	}

	return Normalize(candidates, solved, fp, req.TargetAmount, e.opts.Epsilon)
}
