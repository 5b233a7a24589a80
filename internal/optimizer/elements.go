package optimizer

import "sort"

// ResolveElementSets 解析指定元素与"其他"元素集合
// specified 为需求中显式列出的元素；others 为候选及指定投料废料成分中
// 出现、但未被指定的元素。两个结果均按字典序排序，保证模型构建确定性。
func ResolveElementSets(req Requirement, materials []Material) (specified, others []string) {
	seen := make(map[string]bool, len(req.Elements))
	for _, b := range req.Elements {
		if !seen[b.Element] {
			seen[b.Element] = true
			specified = append(specified, b.Element)
		}
	}

	otherSet := make(map[string]bool)
	for _, m := range materials {
		for el := range m.Composition {
			if !seen[el] && !otherSet[el] {
				otherSet[el] = true
				others = append(others, el)
			}
		}
	}

	sort.Strings(specified)
	sort.Strings(others)
	return specified, others
}
