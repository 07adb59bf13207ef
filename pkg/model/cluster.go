package model

import (
	"sort"
)

// ClusterGenes groups genes lying on one contig and strand into loci.
// Genes are sorted by start (ties by end), then scanned in order: a
// gap from the previous gene's end larger than maxGap starts a new
// locus. A single gene yields a singleton locus.
//
// All genes must share contig, strand and locus kind; the caller
// partitions before clustering (see BuildAssembly).
func ClusterGenes(genes []*Gene, maxGap int) []*Locus {

	if len(genes) == 0 {
		return nil
	}

	sorted := make([]*Gene, len(genes))
	copy(sorted, genes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	var loci []*Locus
	current := &Locus{
		Contig: sorted[0].Contig,
		Strand: sorted[0].Strand,
		Kind:   sorted[0].Kind(),
		Genes:  []*Gene{sorted[0]},
	}
	reach := sorted[0].End

	for _, g := range sorted[1:] {
		if g.Start-reach > maxGap {
			loci = append(loci, current)
			current = &Locus{
				Contig: g.Contig,
				Strand: g.Strand,
				Kind:   g.Kind(),
				Genes:  []*Gene{g},
			}
			reach = g.End
			continue
		}
		current.Genes = append(current.Genes, g)
		if g.End > reach {
			reach = g.End
		}
	}
	loci = append(loci, current)

	return loci
}
