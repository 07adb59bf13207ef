package model

import (
	"errors"
	"testing"
)

func catGene(name string, start, end, strand int, cat Category) *Gene {
	return &Gene{
		Name:     name,
		Contig:   "c1",
		Start:    start,
		End:      end,
		Strand:   strand,
		Category: cat,
	}
}

// TA genes and drug genes cluster as separate groups even when they
// are adjacent on the same contig and strand.
func TestBuildAssemblyKindSeparation(t *testing.T) {

	genes := []*Gene{
		catGene("mazF", 100, 200, StrandPlus, CategoryToxin),
		catGene("mazE", 210, 300, StrandPlus, CategoryAntitoxin),
		catGene("vanA", 320, 900, StrandPlus, CategoryDrug),
	}

	asm := BuildAssembly("G1", genes, 100)

	ta := asm.TALoci()
	drug := asm.DrugLoci()

	if len(ta) != 1 || ta[0].Name() != "mazF/mazE" {
		t.Errorf("expected one TA locus mazF/mazE, got %+v", ta)
	}
	if len(drug) != 1 || drug[0].Name() != "vanA" {
		t.Errorf("expected one drug locus vanA, got %+v", drug)
	}
}

// Strands cluster independently.
func TestBuildAssemblyStrandSeparation(t *testing.T) {

	genes := []*Gene{
		catGene("relE", 100, 200, StrandPlus, CategoryToxin),
		catGene("relB", 210, 300, StrandMinus, CategoryAntitoxin),
	}

	asm := BuildAssembly("G1", genes, 100)

	if len(asm.TALoci()) != 2 {
		t.Errorf("genes on opposite strands must not share a locus, got %d loci", len(asm.TALoci()))
	}
}

// Every gene ends up in exactly one locus of the assembly.
func TestBuildAssemblyMembership(t *testing.T) {

	genes := []*Gene{
		catGene("a", 100, 200, StrandPlus, CategoryToxin),
		catGene("b", 250, 300, StrandPlus, CategoryAntitoxin),
		catGene("c", 5000, 5100, StrandPlus, CategoryDrug),
		catGene("d", 100, 200, StrandMinus, CategoryDrug),
	}

	asm := BuildAssembly("G1", genes, 100)

	seen := make(map[*Gene]int)
	for _, loci := range asm.Contigs {
		for _, l := range loci {
			for _, g := range l.Genes {
				seen[g]++
			}
		}
	}

	for _, g := range genes {
		if seen[g] != 1 {
			t.Errorf("gene %s in %d loci", g.Name, seen[g])
		}
	}
}

func TestBuildAssembliesUnknownGenome(t *testing.T) {

	genesByAsm := map[string][]*Gene{
		"G99": {catGene("mazF", 100, 200, StrandPlus, CategoryToxin)},
	}
	genomeIDs := []string{"G1", "G2", "G3", "G4", "G5", "G6", "G7", "G8", "G9", "G10"}

	_, err := BuildAssemblies(genesByAsm, genomeIDs, 100)

	if err == nil {
		t.Fatal("expected a data error for unlisted genome G99")
	}
	if !errors.Is(err, ErrUnknownGenome) {
		t.Errorf("expected ErrUnknownGenome, got %v", err)
	}
}

// Genomes without hits still get an (empty) assembly.
func TestBuildAssembliesCoversGenomeList(t *testing.T) {

	genesByAsm := map[string][]*Gene{
		"G2": {catGene("mazF", 100, 200, StrandPlus, CategoryToxin)},
	}

	assemblies, err := BuildAssemblies(genesByAsm, []string{"G1", "G2"}, 100)
	if err != nil {
		t.Fatal(err)
	}

	if len(assemblies) != 2 {
		t.Fatalf("expected 2 assemblies, got %d", len(assemblies))
	}
	if assemblies[0].AsmID != "G1" || len(assemblies[0].Contigs) != 0 {
		t.Errorf("G1 should be an empty assembly, got %+v", assemblies[0])
	}
	if len(assemblies[1].TALoci()) != 1 {
		t.Errorf("G2 should carry one TA locus")
	}
}
