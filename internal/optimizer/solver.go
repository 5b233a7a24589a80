package optimizer

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Solver 求解器适配层：不重试，不可行是正常的终态而非故障
// 实现必须对相同模型返回相同解（等价最优解之间的取舍由求解器决定）
type Solver interface {
	Solve(m *Model) (*Solution, error)
}

// SimplexSolver 基于 gonum 单纯形法的求解器，无状态，可并发使用
type SimplexSolver struct {
	// Tol 为 0 时使用 gonum 默认容差
	Tol float64
}

func NewSimplexSolver() *SimplexSolver {
	return &SimplexSolver{}
}

// Solve 将模型转换为标准形后求解
func (s *SimplexSolver) Solve(m *Model) (*Solution, error) {
	n := len(m.Cost)
	if n == 0 {
		return nil, fmt.Errorf("模型没有决策变量")
	}

	// 一般形式：minimize c·x  s.t.  G·x <= h,  A·x = b
	var gRows, aRows [][]float64
	var h, b []float64

	for _, c := range m.Constraints {
		switch {
		case c.Equal != nil:
			aRows = append(aRows, c.Coeffs)
			b = append(b, *c.Equal)
		default:
			if c.Max != nil {
				gRows = append(gRows, c.Coeffs)
				h = append(h, *c.Max)
			}
			if c.Min != nil {
				gRows = append(gRows, negate(c.Coeffs))
				h = append(h, -*c.Min)
			}
		}
	}

	// 非负约束 x_i >= 0
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		row[i] = -1
		gRows = append(gRows, row)
		h = append(h, 0)
	}

	g := mat.NewDense(len(gRows), n, flatten(gRows, n))
	var a mat.Matrix
	if len(aRows) > 0 {
		a = mat.NewDense(len(aRows), n, flatten(aRows, n))
	}

	cNew, aNew, bNew := lp.Convert(m.Cost, g, h, a, b)
	_, xNew, err := lp.Simplex(cNew, aNew, bNew, s.Tol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) || errors.Is(err, lp.ErrUnbounded) {
			return &Solution{Feasible: false}, nil
		}
		return nil, fmt.Errorf("求解失败: %w", err)
	}

	// 标准形将 x 拆为正负两部分：x = x⁺ - x⁻
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = xNew[i] - xNew[n+i]
		if values[i] < 0 {
			values[i] = 0
		}
	}
	return &Solution{Feasible: true, Values: values}, nil
}

func negate(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = -x
	}
	return out
}

func flatten(rows [][]float64, n int) []float64 {
	out := make([]float64, 0, len(rows)*n)
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
