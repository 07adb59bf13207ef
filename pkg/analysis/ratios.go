// Ratio-of-ratios over the co-occurrence table and its pivot into the
// TA x determinant matrix used for reporting.

package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// CalcRatios returns a copy of the pair table with Ratio and Log2Ratio
// filled in. The first ratio compares co-carriers to all TA carriers,
// the other compares determinant carriers to the whole population; the
// result is the fold between them, negative when the pair is seen less
// often than chance. TACount, DrugCount and Tot are never zero for
// emitted pairs, but Corr may be: those rows get -Inf and are resolved
// by UnstackRatios.
func CalcRatios(pairs []*Pair) []*Pair {

	out := make([]*Pair, len(pairs))
	for i, p := range pairs {
		cp := *p

		first := float64(cp.Corr) / float64(cp.TACount)
		other := float64(cp.DrugCount) / float64(cp.Tot)

		if first >= other {
			cp.Ratio = first / other
		} else {
			cp.Ratio = -other / first // -Inf when Corr == 0
		}

		switch {
		case cp.Ratio > 0:
			cp.Log2Ratio = math.Log2(cp.Ratio)
		case cp.Ratio < 0:
			cp.Log2Ratio = -math.Log2(-cp.Ratio)
		}

		out[i] = &cp
	}

	return out
}

// RatioMatrix is the pair table pivoted to TA rows and determinant
// columns, ordered by descending carrier counts.
type RatioMatrix struct {
	TAs    []string    `json:"tas"`
	Drugs  []string    `json:"drugs"`
	Values [][]float64 `json:"values"` // Values[ta][drug]
}

// Value returns the cell for a named pair, zero when absent.
func (m *RatioMatrix) Value(ta, drug string) float64 {
	for i, t := range m.TAs {
		if t != ta {
			continue
		}
		for j, d := range m.Drugs {
			if d == drug {
				return m.Values[i][j]
			}
		}
	}
	return 0.0
}

// UnstackRatios filters the pair table and pivots it into a matrix.
// Log2 ratios failing the pval10 or magnitude thresholds become 0
// (dropped from further analysis). -Inf entries (pairs never seen
// together) are replaced by -ratioMax, or by -log2(absMax) when adjust
// is set, absMax being the largest finite |log2 ratio|; the adjustment
// avoids overstating negative co-occurrence for low-count elements.
// Finally all values are clamped to [-ratioMax, ratioMax]. The
// pre-adjustment absMax is returned so the caller can judge whether to
// adjust.
func UnstackRatios(pairs []*Pair, pval10Th, ratioTh, ratioMax float64, adjust bool) (*RatioMatrix, float64) {

	vals := make([]float64, len(pairs))
	for i, p := range pairs {
		v := p.Log2Ratio
		if p.PVal10 < pval10Th || math.Abs(v) < ratioTh {
			v = 0.0
		}
		vals[i] = v
	}

	var finite []float64
	for _, v := range vals {
		if !math.IsInf(v, 0) {
			finite = append(finite, math.Abs(v))
		}
	}
	absMax := 0.0
	if len(finite) > 0 {
		absMax = floats.Max(finite)
	}

	adjMax := ratioMax
	if adjust {
		adjMax = math.Log2(absMax)
	}

	for i, v := range vals {
		if math.IsInf(v, -1) {
			v = -adjMax
		}
		if v > ratioMax {
			v = ratioMax
		}
		if v < -ratioMax {
			v = -ratioMax
		}
		vals[i] = v
	}

	taCount := make(map[string]int)
	drugCount := make(map[string]int)
	for _, p := range pairs {
		taCount[p.TA] = p.TACount
		drugCount[p.Drug] = p.DrugCount
	}

	m := &RatioMatrix{
		TAs:   orderByCount(taCount),
		Drugs: orderByCount(drugCount),
	}

	taIdx := index(m.TAs)
	drugIdx := index(m.Drugs)

	m.Values = make([][]float64, len(m.TAs))
	for i := range m.Values {
		m.Values[i] = make([]float64, len(m.Drugs))
	}
	for i, p := range pairs {
		m.Values[taIdx[p.TA]][drugIdx[p.Drug]] = vals[i]
	}

	return m, absMax
}

// FinalFilter drops named rows and columns and, when filterBlank is
// set, any all-zero row or column not explicitly kept.
func FinalFilter(m *RatioMatrix, remove, keep []string, filterBlank bool) *RatioMatrix {

	removed := stringSet(remove)
	kept := stringSet(keep)

	rowOK := make([]bool, len(m.TAs))
	for i, ta := range m.TAs {
		rowOK[i] = !removed[ta]
	}
	colOK := make([]bool, len(m.Drugs))
	for j, drug := range m.Drugs {
		colOK[j] = !removed[drug]
	}

	// Blank rows/columns are judged on the remove-filtered matrix, both
	// directions at once.
	if filterBlank {
		for i, ta := range m.TAs {
			if !rowOK[i] || kept[ta] {
				continue
			}
			sum := 0.0
			for j := range m.Drugs {
				if colOK[j] {
					sum += m.Values[i][j]
				}
			}
			rowOK[i] = sum != 0
		}
		for j, drug := range m.Drugs {
			if !colOK[j] || kept[drug] {
				continue
			}
			sum := 0.0
			for i, ta := range m.TAs {
				if !removed[ta] {
					sum += m.Values[i][j]
				}
			}
			colOK[j] = sum != 0
		}
	}

	out := &RatioMatrix{}
	for i, ta := range m.TAs {
		if !rowOK[i] {
			continue
		}
		out.TAs = append(out.TAs, ta)
		var row []float64
		for j := range m.Drugs {
			if colOK[j] {
				row = append(row, m.Values[i][j])
			}
		}
		out.Values = append(out.Values, row)
	}
	for j, drug := range m.Drugs {
		if colOK[j] {
			out.Drugs = append(out.Drugs, drug)
		}
	}

	return out
}

// orderByCount sorts names by descending carrier count, ties by name,
// so the most common elements lead the report.
func orderByCount(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func index(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, name := range names {
		idx[name] = i
	}
	return idx
}

func stringSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
