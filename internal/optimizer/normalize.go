package optimizer

import "math"

type draftEntry struct {
	material   Material
	unitWeight float64 // 每千克成品的原料投入量（kg）
}

// Normalize 将求解出的原料权重与指定投料合并为最终配方
// 百分比按原料投入量重新计算，不信任求解器报告的比例（指定投料从未进入变量）
func Normalize(candidates []Material, sol []float64, fp *fixedPass, target, epsilon float64) (*Result, error) {
	var entries []draftEntry
	for _, f := range fp.entries {
		entries = append(entries, draftEntry{material: f.material, unitWeight: f.amount / target})
	}
	for i, m := range candidates {
		if i < len(sol) {
			entries = append(entries, draftEntry{material: m, unitWeight: sol[i]})
		}
	}

	// 过滤噪声级别的投入
	filtered := entries[:0]
	var totalWeight float64
	for _, e := range entries {
		if e.unitWeight > epsilon {
			filtered = append(filtered, e)
			totalWeight += e.unitWeight
		}
	}
	if len(filtered) == 0 || totalWeight == 0 {
		return nil, ErrEmptyRecipe
	}

	result := &Result{FinalComposition: make(map[string]float64)}

	var totalYielded, totalCost float64
	var sumPct float64
	maxIdx := 0
	for i, e := range filtered {
		pct := round2(e.unitWeight / totalWeight * 100)
		weight := e.unitWeight * target
		cost := weight * e.material.UnitPrice
		totalCost += cost

		yielded := e.unitWeight * e.material.YieldRate / 100
		totalYielded += yielded
		for el, p := range e.material.Composition {
			result.FinalComposition[el] += yielded * p / 100
		}

		result.Recipe = append(result.Recipe, RecipeItem{
			MaterialID:  e.material.ID,
			Name:        e.material.Name,
			StorageArea: e.material.StorageArea,
			Percentage:  pct,
			Weight:      round2(weight),
			Cost:        round2(cost),
		})
		sumPct += pct
		if pct > result.Recipe[maxIdx].Percentage {
			maxIdx = i
		}
	}

	// 舍入误差全部记到占比最大的条目上，保证显示总和精确为 100.00
	if diff := round2(100 - sumPct); diff != 0 {
		result.Recipe[maxIdx].Percentage = round2(result.Recipe[maxIdx].Percentage + diff)
	}

	// 成品成分独立复算，未被要求的元素同样上报，供调用方审计成分漂移
	if totalYielded > 0 {
		for el, mass := range result.FinalComposition {
			result.FinalComposition[el] = round4(mass / totalYielded * 100)
		}
	}

	result.TotalCost = round2(totalCost)
	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
