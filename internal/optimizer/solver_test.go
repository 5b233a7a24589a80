package optimizer

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestSimplexSolverBasic(t *testing.T) {
	// minimize 2x + 5y  s.t.  x + y = 1,  0.08x + 0.14y >= 0.10
	m := &Model{
		Cost: []float64{2, 5},
		Constraints: []Constraint{
			{Name: "balance", Coeffs: []float64{1, 1}, Equal: ptr(1)},
			{Name: "si", Coeffs: []float64{0.08, 0.14}, Min: ptr(0.10)},
		},
	}

	sol, err := NewSimplexSolver().Solve(m)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.Feasible {
		t.Fatal("Expected feasible solution")
	}
	if math.Abs(sol.Values[0]-2.0/3) > 1e-6 || math.Abs(sol.Values[1]-1.0/3) > 1e-6 {
		t.Errorf("Solution = %v, want [2/3, 1/3]", sol.Values)
	}
}

func TestSimplexSolverInfeasible(t *testing.T) {
	// x = 1 与 x <= 0.5 矛盾
	m := &Model{
		Cost: []float64{1},
		Constraints: []Constraint{
			{Name: "balance", Coeffs: []float64{1}, Equal: ptr(1)},
			{Name: "cap", Coeffs: []float64{1}, Max: ptr(0.5)},
		},
	}

	sol, err := NewSimplexSolver().Solve(m)
	if err != nil {
		t.Fatalf("Solve returned error for infeasible model: %v", err)
	}
	if sol.Feasible {
		t.Fatal("Expected infeasible solution")
	}
}

func TestSimplexSolverNonNegative(t *testing.T) {
	// 最优解全部落在便宜变量上，变量不得为负
	m := &Model{
		Cost: []float64{3, 1},
		Constraints: []Constraint{
			{Name: "balance", Coeffs: []float64{1, 1}, Equal: ptr(10)},
		},
	}

	sol, err := NewSimplexSolver().Solve(m)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.Feasible {
		t.Fatal("Expected feasible solution")
	}
	for i, v := range sol.Values {
		if v < 0 {
			t.Errorf("Values[%d] = %v, want >= 0", i, v)
		}
	}
	if math.Abs(sol.Values[1]-10) > 1e-6 {
		t.Errorf("Values[1] = %v, want 10", sol.Values[1])
	}
}
