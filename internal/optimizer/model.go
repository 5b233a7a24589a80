package optimizer

// fixedPass 指定投料的预计算结果
// 贡献值均以 1 千克成品为基准（按 target_amount 归一化）
type fixedPass struct {
	entries []fixedEntry
	yield   float64            // 指定投料对成品质量的贡献（占 1 的比例）
	elem    map[string]float64 // 元素贡献（占成品质量的比例）
	cost    float64            // 固定成本（绝对值，不参与优化）
}

type fixedEntry struct {
	material Material
	amount   float64 // kg，字面值
}

// runFixedPass 校验并折算指定投料的成分贡献
func runFixedPass(fixed []FixedAmount, byID map[uint]Material, target float64) (*fixedPass, error) {
	fp := &fixedPass{elem: make(map[string]float64)}
	for _, f := range fixed {
		m, ok := byID[f.MaterialID]
		if !ok {
			return nil, &FixedQuantityError{MaterialID: f.MaterialID, Amount: f.Amount}
		}
		if f.Amount > m.StockKg {
			return nil, &FixedQuantityError{MaterialID: m.ID, Name: m.Name, Amount: f.Amount, StockKg: m.StockKg}
		}
		unitWeight := f.Amount / target
		yielded := unitWeight * m.YieldRate / 100
		fp.yield += yielded
		for el, pct := range m.Composition {
			fp.elem[el] += yielded * pct / 100
		}
		fp.cost += f.Amount * m.UnitPrice
		fp.entries = append(fp.entries, fixedEntry{material: m, amount: f.Amount})
	}
	return fp, nil
}

// applySafetyMargin 将区间宽度向中心收缩 fraction（如 5%）
// 零宽度区间（min==max）不收缩，与来源行为保持一致
func applySafetyMargin(min, max, fraction float64) (float64, float64) {
	if max <= min || max <= 0 {
		return min, max
	}
	shrink := fraction * (max - min) / 2
	return min + shrink, max - shrink
}

// BuildModel 将需求、候选废料与指定投料折算结果组装为线性规划模型
// 决策变量 x_i = 每千克成品中候选废料 i 的原料投入量（kg）
func BuildModel(candidates []Material, req Request, specified, others []string, fp *fixedPass, safetyMargin float64) *Model {
	n := len(candidates)
	model := &Model{
		MaterialIDs: make([]uint, n),
		Cost:        make([]float64, n),
	}
	for i, m := range candidates {
		model.MaterialIDs[i] = m.ID
		model.Cost[i] = m.UnitPrice
	}

	target := req.TargetAmount

	// 质量平衡：出水后的总贡献（含指定投料）恰为 1 千克成品
	balance := Constraint{Name: "total_yield", Coeffs: make([]float64, n)}
	for i, m := range candidates {
		balance.Coeffs[i] = m.YieldRate / 100
	}
	equal := 1 - fp.yield
	balance.Equal = &equal
	model.Constraints = append(model.Constraints, balance)

	// 库存约束：批次投入不得超过现有库存
	for i, m := range candidates {
		coeffs := make([]float64, n)
		coeffs[i] = 1
		max := m.StockKg / target
		model.Constraints = append(model.Constraints, Constraint{
			Name:   "stock_" + m.Name,
			Coeffs: coeffs,
			Max:    &max,
		})
	}

	// 指定元素约束
	bounds := make(map[string]ElementBound, len(req.Requirement.Elements))
	for _, b := range req.Requirement.Elements {
		bounds[b.Element] = b
	}
	for _, el := range specified {
		b, ok := bounds[el]
		if !ok {
			continue
		}
		min, max := b.Min, b.Max
		if req.EnableSafetyMargin {
			min, max = applySafetyMargin(min, max, safetyMargin)
		}
		min = min/100 - fp.elem[el]
		max = max/100 - fp.elem[el]
		if min < 0 {
			min = 0
		}

		c := Constraint{Name: el, Coeffs: elementCoeffs(candidates, el)}
		if min > 0 {
			v := min
			c.Min = &v
		}
		if max > 0 && max >= min {
			v := max
			c.Max = &v
		}
		if c.Min != nil || c.Max != nil {
			model.Constraints = append(model.Constraints, c)
		}
	}

	// 其他单个元素上限
	if req.Requirement.Others != nil && req.Requirement.Others.Max > 0 {
		for _, el := range others {
			max := req.Requirement.Others.Max/100 - fp.elem[el]
			if max < 0 {
				max = 0
			}
			v := max
			model.Constraints = append(model.Constraints, Constraint{
				Name:   "other_" + el,
				Coeffs: elementCoeffs(candidates, el),
				Max:    &v,
			})
		}
	}

	// 其他元素合计上限
	if req.Requirement.TotalOthers != nil && req.Requirement.TotalOthers.Max > 0 {
		coeffs := make([]float64, n)
		var fixedSum float64
		for _, el := range others {
			for i := range candidates {
				coeffs[i] += elementCoeff(candidates[i], el)
			}
			fixedSum += fp.elem[el]
		}
		max := req.Requirement.TotalOthers.Max/100 - fixedSum
		if max < 0 {
			max = 0
		}
		model.Constraints = append(model.Constraints, Constraint{
			Name:   "total_others_sum",
			Coeffs: coeffs,
			Max:    &max,
		})
	}

	return model
}

// elementCoeff 废料 m 对元素 el 在成品中的贡献系数（出水率折算）
func elementCoeff(m Material, el string) float64 {
	return m.YieldRate / 100 * m.Composition[el] / 100
}

func elementCoeffs(candidates []Material, el string) []float64 {
	coeffs := make([]float64, len(candidates))
	for i, m := range candidates {
		coeffs[i] = elementCoeff(m, el)
	}
	return coeffs
}
