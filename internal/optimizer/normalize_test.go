package optimizer

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeFiltersNoise(t *testing.T) {
	candidates := []Material{
		{ID: 1, Name: "主料", Composition: map[string]float64{"Si": 10}, UnitPrice: 2, YieldRate: 100},
		{ID: 2, Name: "噪声", Composition: map[string]float64{"Si": 10}, UnitPrice: 5, YieldRate: 100},
	}
	fp := &fixedPass{elem: map[string]float64{}}

	result, err := Normalize(candidates, []float64{1.0, 0.0005}, fp, 1000, DefaultEpsilon)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(result.Recipe) != 1 {
		t.Fatalf("Expected noise entry filtered, got %d items", len(result.Recipe))
	}
	if result.Recipe[0].MaterialID != 1 {
		t.Errorf("Wrong surviving material: %d", result.Recipe[0].MaterialID)
	}
	if result.Recipe[0].Percentage != 100 {
		t.Errorf("Single entry percentage = %v, want 100", result.Recipe[0].Percentage)
	}
}

func TestNormalizeEmptyRecipe(t *testing.T) {
	candidates := []Material{
		{ID: 1, Name: "主料", Composition: map[string]float64{"Si": 10}, UnitPrice: 2, YieldRate: 100},
	}
	fp := &fixedPass{elem: map[string]float64{}}

	_, err := Normalize(candidates, []float64{0.0001}, fp, 1000, DefaultEpsilon)
	if !errors.Is(err, ErrEmptyRecipe) {
		t.Fatalf("Expected ErrEmptyRecipe, got %v", err)
	}
}

func TestNormalizeRoundingCorrection(t *testing.T) {
	// 三等分：33.33 × 3 = 99.99，差额记到占比最大的条目
	candidates := []Material{
		{ID: 1, Name: "甲", Composition: map[string]float64{"Si": 10}, UnitPrice: 2, YieldRate: 100},
		{ID: 2, Name: "乙", Composition: map[string]float64{"Si": 10}, UnitPrice: 3, YieldRate: 100},
		{ID: 3, Name: "丙", Composition: map[string]float64{"Si": 10}, UnitPrice: 4, YieldRate: 100},
	}
	fp := &fixedPass{elem: map[string]float64{}}
	third := 1.0 / 3.0

	result, err := Normalize(candidates, []float64{third, third, third}, fp, 1000, DefaultEpsilon)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	var sum float64
	for _, item := range result.Recipe {
		sum += item.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("Percentages sum to %v, want 100", sum)
	}
	if result.Recipe[0].Percentage != 33.34 {
		t.Errorf("Correction entry percentage = %v, want 33.34", result.Recipe[0].Percentage)
	}
}

func TestNormalizeMergesFixedEntries(t *testing.T) {
	candidates := []Material{
		{ID: 1, Name: "求解料", Composition: map[string]float64{"Si": 8}, UnitPrice: 2, YieldRate: 100},
	}
	fixed := Material{ID: 3, Name: "指定料", Composition: map[string]float64{"Si": 12}, UnitPrice: 4, YieldRate: 100}
	fp := &fixedPass{
		entries: []fixedEntry{{material: fixed, amount: 500}},
		elem:    map[string]float64{"Si": 0.06},
		yield:   0.5,
	}

	result, err := Normalize(candidates, []float64{0.5}, fp, 1000, DefaultEpsilon)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(result.Recipe) != 2 {
		t.Fatalf("Expected 2 recipe items, got %d", len(result.Recipe))
	}
	// 指定投料排在前，权重为字面千克数
	if result.Recipe[0].MaterialID != 3 || result.Recipe[0].Weight != 500 {
		t.Errorf("Fixed entry = %+v, want material 3 at 500 kg", result.Recipe[0])
	}
	if math.Abs(result.FinalComposition["Si"]-10) > 0.001 {
		t.Errorf("Final Si = %v, want 10 (blend of 8%% and 12%%)", result.FinalComposition["Si"])
	}
	// 成本 = 500×4 + 500×2
	if math.Abs(result.TotalCost-3000) > 0.01 {
		t.Errorf("TotalCost = %v, want 3000", result.TotalCost)
	}
}

func TestRoundHelpers(t *testing.T) {
	if got := round2(1.0 / 3 * 100); got != 33.33 {
		t.Errorf("round2(100/3) = %v, want 33.33", got)
	}
	if got := round2(2.0 / 3 * 100); got != 66.67 {
		t.Errorf("round2(200/3) = %v, want 66.67", got)
	}
	if got := round4(1.0 / 3); got != 0.3333 {
		t.Errorf("round4(1/3) = %v, want 0.3333", got)
	}
}
