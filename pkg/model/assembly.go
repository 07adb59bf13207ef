package model

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownGenome flags a hit referencing a genome that is not in the
// genome list, i.e. a mismatch between the input files.
var ErrUnknownGenome = errors.New("genome not present in genome list")

type contigStrandKind struct {
	contig string
	strand int
	kind   LocusKind
}

// BuildAssembly clusters all genes parsed for one genome into loci.
// TA genes (toxin + antitoxin) and drug genes cluster as separate
// groups per (contig, strand), so a locus never mixes the two sides
// of the analysis.
func BuildAssembly(asmid string, genes []*Gene, maxGap int) *Assembly {

	asm := &Assembly{
		AsmID:   asmid,
		Contigs: make(map[string][]*Locus),
	}

	groups := make(map[contigStrandKind][]*Gene)
	for _, g := range genes {
		key := contigStrandKind{g.Contig, g.Strand, g.Kind()}
		groups[key] = append(groups[key], g)
	}

	for key, grp := range groups {
		asm.Contigs[key.contig] = append(asm.Contigs[key.contig], ClusterGenes(grp, maxGap)...)
	}

	// Deterministic order within a contig.
	for _, loci := range asm.Contigs {
		sort.SliceStable(loci, func(i, j int) bool {
			if loci[i].Start() != loci[j].Start() {
				return loci[i].Start() < loci[j].Start()
			}
			return loci[i].End() < loci[j].End()
		})
	}

	return asm
}

// BuildAssemblies builds one assembly per listed genome from the genes
// grouped by assembly id (as returned by ReadHits). Genomes without
// hits get an empty assembly. A hit group referencing a genome absent
// from the list is a data error: the inputs disagree and downstream
// statistics would be meaningless.
func BuildAssemblies(genesByAsm map[string][]*Gene, genomeIDs []string, maxGap int) ([]*Assembly, error) {

	listed := make(map[string]bool, len(genomeIDs))
	for _, id := range genomeIDs {
		listed[id] = true
	}

	for asmid := range genesByAsm {
		if !listed[asmid] {
			return nil, fmt.Errorf("hit table references %q: %w", asmid, ErrUnknownGenome)
		}
	}

	assemblies := make([]*Assembly, 0, len(genomeIDs))
	for _, id := range genomeIDs {
		assemblies = append(assemblies, BuildAssembly(id, genesByAsm[id], maxGap))
	}

	return assemblies, nil
}
