package model

import (
	"fmt"
	"strings"
)

// Category classifies a reference protein (and the genes called from it).
type Category int

const (
	CategoryUnknown Category = iota
	CategoryToxin
	CategoryAntitoxin
	CategoryDrug // antibiotic-resistance determinant (CARD)
)

func (c Category) String() string {
	switch c {
	case CategoryToxin:
		return "toxin"
	case CategoryAntitoxin:
		return "antitoxin"
	case CategoryDrug:
		return "drug"
	default:
		return "unknown"
	}
}

// LocusKind says which side of the analysis a locus belongs to.
// Toxin and antitoxin genes form TA loci together; resistance
// determinants form drug loci on their own.
type LocusKind int

const (
	LocusTA LocusKind = iota
	LocusDrug
)

func (k LocusKind) String() string {
	if k == LocusDrug {
		return "drug"
	}
	return "ta"
}

// Strand values as stored on Gene.
const (
	StrandPlus  = 1
	StrandMinus = -1
)

// Gene is a single translated hit placed on a contig. Immutable once
// parsed; owned by exactly one Locus after clustering.
type Gene struct {
	Name     string   `json:"name"`
	Contig   string   `json:"contig"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Strand   int      `json:"strand"`
	Category Category `json:"category"`
	PPos     float64  `json:"ppos"`
	QCovs    float64  `json:"qcovs"`
	Evalue   float64  `json:"evalue"`
	Bitscore float64  `json:"bitscore"`
}

func (g *Gene) String() string {
	return fmt.Sprintf("%s(%g)", g.Name, g.PPos)
}

// Kind maps the gene category to the locus group it clusters with.
func (g *Gene) Kind() LocusKind {
	if g.Category == CategoryDrug {
		return LocusDrug
	}
	return LocusTA
}

// Locus is a run of adjacent genes on one contig and strand. Created
// only by clustering; not mutated afterwards.
type Locus struct {
	Contig string    `json:"contig"`
	Strand int       `json:"strand"`
	Kind   LocusKind `json:"kind"`
	Genes  []*Gene   `json:"genes"`
}

// Name joins the member gene names in genomic order.
func (l *Locus) Name() string {
	names := make([]string, len(l.Genes))
	for i, g := range l.Genes {
		names[i] = g.Name
	}
	return strings.Join(names, "/")
}

// Start is the smallest member start. Genes are kept sorted by start,
// so the first member carries it.
func (l *Locus) Start() int {
	return l.Genes[0].Start
}

// End is the largest member end.
func (l *Locus) End() int {
	end := l.Genes[0].End
	for _, g := range l.Genes[1:] {
		if g.End > end {
			end = g.End
		}
	}
	return end
}

func (l *Locus) String() string {
	parts := make([]string, len(l.Genes))
	for i, g := range l.Genes {
		parts[i] = g.String()
	}
	return strings.Join(parts, "/")
}

// Assembly holds every locus found in one genome, keyed by contig.
type Assembly struct {
	AsmID   string              `json:"asm_id"`
	Contigs map[string][]*Locus `json:"contigs"`
}

// Loci returns all loci of the given kind across contigs.
func (a *Assembly) Loci(kind LocusKind) []*Locus {
	var out []*Locus
	for _, loci := range a.Contigs {
		for _, l := range loci {
			if l.Kind == kind {
				out = append(out, l)
			}
		}
	}
	return out
}

// TALoci lists toxin-antitoxin loci in this assembly.
func (a *Assembly) TALoci() []*Locus { return a.Loci(LocusTA) }

// DrugLoci lists resistance-determinant loci in this assembly.
func (a *Assembly) DrugLoci() []*Locus { return a.Loci(LocusDrug) }
