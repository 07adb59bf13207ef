// Co-occurrence tallies over an assembly collection. Everything here
// is a pure function of the materialised assemblies.

package analysis

import (
	"sort"

	"github.com/jaglab/tascooc/pkg/model"
)

// Pair is one row of the co-occurrence table: a TA system against a
// resistance determinant, with the carrier counts needed by the ratio
// and probability calculations.
type Pair struct {
	TA        string  `json:"ta"`
	Drug      string  `json:"drug"`
	Corr      int     `json:"corr"`       // assemblies carrying both within distance
	TACount   int     `json:"ta_count"`   // assemblies carrying the TA system
	DrugCount int     `json:"drug_count"` // assemblies carrying the determinant
	Tot       int     `json:"tot"`        // assembly population size
	PVal10    float64 `json:"pval_10"`
	Ratio     float64 `json:"ratio"`
	Log2Ratio float64 `json:"log2_ratio"`
}

// OccurrenceCounts tallies, per TA locus name and per determinant
// name, the number of assemblies carrying it (once per assembly).
func OccurrenceCounts(assemblies []*model.Assembly) (taCount, drugCount map[string]int) {

	taCount = make(map[string]int)
	drugCount = make(map[string]int)

	for _, asm := range assemblies {
		for name := range taNames(asm) {
			taCount[name]++
		}
		for name := range drugNames(asm) {
			drugCount[name]++
		}
	}

	return taCount, drugCount
}

// Cooccurrences builds the full pair table over the observed TA
// systems and determinants. Corr counts assemblies where the pair
// co-occurs within maxDist (see cooccurs); pairs never seen together
// keep Corr == 0 and are resolved to -Inf ratios later. PVal10 is the
// chance of 10 or more co-carriers under the hypergeometric null.
func Cooccurrences(assemblies []*model.Assembly, maxDist int) []*Pair {

	taCount, drugCount := OccurrenceCounts(assemblies)
	tot := len(assemblies)

	corr := make(map[[2]string]int)
	for _, asm := range assemblies {
		for ta, taLoci := range taNames(asm) {
			for drug, drugLoci := range drugNames(asm) {
				if lociWithin(taLoci, drugLoci, maxDist) {
					corr[[2]string{ta, drug}]++
				}
			}
		}
	}

	tas := sortedKeys(taCount)
	drugs := sortedKeys(drugCount)

	pairs := make([]*Pair, 0, len(tas)*len(drugs))
	for _, ta := range tas {
		for _, drug := range drugs {
			pairs = append(pairs, &Pair{
				TA:        ta,
				Drug:      drug,
				Corr:      corr[[2]string{ta, drug}],
				TACount:   taCount[ta],
				DrugCount: drugCount[drug],
				Tot:       tot,
				PVal10:    SurvivalAtTen(taCount[ta], drugCount[drug], tot),
			})
		}
	}

	return pairs
}

// CoOccurrenceFraction is the fraction of assemblies carrying at least
// one TA locus and one determinant within maxDist of each other.
func CoOccurrenceFraction(assemblies []*model.Assembly, maxDist int) float64 {

	if len(assemblies) == 0 {
		return 0.0
	}

	carriers := 0
	for _, asm := range assemblies {
		if assemblyCooccurs(asm, maxDist) {
			carriers++
		}
	}

	return float64(carriers) / float64(len(assemblies))
}

func assemblyCooccurs(asm *model.Assembly, maxDist int) bool {
	taLoci := asm.TALoci()
	drugLoci := asm.DrugLoci()
	if len(taLoci) == 0 || len(drugLoci) == 0 {
		return false
	}
	if maxDist < 0 {
		return true
	}
	for _, ta := range taLoci {
		for _, drug := range drugLoci {
			if within(ta, drug, maxDist) {
				return true
			}
		}
	}
	return false
}

// taNames maps each TA locus name in the assembly to its loci.
func taNames(asm *model.Assembly) map[string][]*model.Locus {
	return lociByName(asm.TALoci())
}

// drugNames maps each determinant gene name to the loci containing it.
// Determinants are keyed per gene (one CARD reference each), while the
// containing locus supplies the genomic span for distance checks.
func drugNames(asm *model.Assembly) map[string][]*model.Locus {
	byName := make(map[string][]*model.Locus)
	for _, l := range asm.DrugLoci() {
		seen := make(map[string]bool)
		for _, g := range l.Genes {
			if !seen[g.Name] {
				byName[g.Name] = append(byName[g.Name], l)
				seen[g.Name] = true
			}
		}
	}
	return byName
}

func lociByName(loci []*model.Locus) map[string][]*model.Locus {
	byName := make(map[string][]*model.Locus)
	for _, l := range loci {
		byName[l.Name()] = append(byName[l.Name()], l)
	}
	return byName
}

// lociWithin reports whether any pair from the two locus sets lies
// within maxDist. maxDist < 0 disables the distance requirement, so
// co-presence in the assembly is enough.
func lociWithin(a, b []*model.Locus, maxDist int) bool {
	if maxDist < 0 {
		return len(a) > 0 && len(b) > 0
	}
	for _, la := range a {
		for _, lb := range b {
			if within(la, lb, maxDist) {
				return true
			}
		}
	}
	return false
}

// within measures the base-pair gap between two locus spans on the
// same contig; overlapping spans have distance zero. Loci on different
// contigs are never within distance.
func within(a, b *model.Locus, maxDist int) bool {
	if a.Contig != b.Contig {
		return false
	}
	gap := 0
	switch {
	case a.End() < b.Start():
		gap = b.Start() - a.End()
	case b.End() < a.Start():
		gap = a.Start() - b.End()
	}
	return gap <= maxDist
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
