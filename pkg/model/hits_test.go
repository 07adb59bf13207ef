package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseHitRecord(t *testing.T) {

	line := "G1\tmazF\tc1\t100\t200\t+\t92.5\t98.0\t1e-30\t210.5"

	rec, err := ParseHitRecord(line)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if rec.AsmID != "G1" || rec.QSeqID != "mazF" || rec.Contig != "c1" {
		t.Errorf("ids parsed wrong: %+v", rec)
	}
	if rec.Start != 100 || rec.End != 200 || rec.Strand != StrandPlus {
		t.Errorf("coordinates parsed wrong: %+v", rec)
	}
	if rec.PPos != 92.5 || rec.QCovs != 98.0 || rec.Evalue != 1e-30 || rec.Bitscore != 210.5 {
		t.Errorf("metrics parsed wrong: %+v", rec)
	}
}

func TestParseHitRecordErrors(t *testing.T) {

	cases := []struct {
		name string
		line string
	}{
		{"too few fields", "G1\tmazF\tc1\t100\t200"},
		{"non-numeric start", "G1\tmazF\tc1\tabc\t200\t+\t92.5\t98.0\t1e-30\t210.5"},
		{"start after end", "G1\tmazF\tc1\t300\t200\t+\t92.5\t98.0\t1e-30\t210.5"},
		{"zero start", "G1\tmazF\tc1\t0\t200\t+\t92.5\t98.0\t1e-30\t210.5"},
		{"unknown strand", "G1\tmazF\tc1\t100\t200\t?\t92.5\t98.0\t1e-30\t210.5"},
		{"empty contig", "G1\tmazF\t\t100\t200\t+\t92.5\t98.0\t1e-30\t210.5"},
		{"bad evalue", "G1\tmazF\tc1\t100\t200\t+\t92.5\t98.0\tnope\t210.5"},
	}

	for _, tc := range cases {
		if _, err := ParseHitRecord(tc.line); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestParseHitRecordMinusStrand(t *testing.T) {

	rec, err := ParseHitRecord("G1\tvanA\tc2\t500\t900\t-\t88.0\t91.0\t2e-20\t180.0")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if rec.Strand != StrandMinus {
		t.Errorf("expected minus strand, got %d", rec.Strand)
	}
}

func TestQualityFilter(t *testing.T) {

	filt := QualityFilter{MinPPos: 50, MinQCovs: 50, MaxEvalue: 1e-5}

	ok := &HitRecord{PPos: 90, QCovs: 80, Evalue: 1e-10}
	if !filt.Pass(ok) {
		t.Error("good hit rejected")
	}

	lowPPos := &HitRecord{PPos: 30, QCovs: 80, Evalue: 1e-10}
	if filt.Pass(lowPPos) {
		t.Error("low ppos hit accepted")
	}

	highEvalue := &HitRecord{PPos: 90, QCovs: 80, Evalue: 0.1}
	if filt.Pass(highEvalue) {
		t.Error("weak e-value hit accepted")
	}

	noCutoff := QualityFilter{}
	if !noCutoff.Pass(highEvalue) {
		t.Error("zero-value filter must accept everything")
	}
}

// Malformed and unclassified rows are skipped, good rows grouped by
// assembly.
func TestReadHits(t *testing.T) {

	content := strings.Join([]string{
		"# qseqid formats below",
		"G1\tmazF\tc1\t100\t200\t+\t92.5\t98.0\t1e-30\t210.5",
		"G1\tmazE\tc1\t210\t300\t+\t90.0\t97.0\t1e-25\t190.0",
		"G2\tvanA\tc9\t500\t900\t-\t88.0\t91.0\t2e-20\t180.0",
		"G2\tbroken\tc9\txxx\t900\t-\t88.0\t91.0\t2e-20\t180.0", // bad start
		"G2\tmystery\tc9\t10\t90\t+\t88.0\t91.0\t2e-20\t180.0",  // unclassified
		"",
	}, "\n")

	fpath := filepath.Join(t.TempDir(), "hits.tsv")
	if err := os.WriteFile(fpath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	classify := func(q string) Category {
		switch q {
		case "mazF":
			return CategoryToxin
		case "mazE":
			return CategoryAntitoxin
		case "vanA", "broken":
			return CategoryDrug
		default:
			return CategoryUnknown
		}
	}

	genes, skipped, err := ReadHits(fpath, classify, QualityFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if skipped != 2 {
		t.Errorf("expected 2 skipped rows, got %d", skipped)
	}
	if len(genes["G1"]) != 2 {
		t.Errorf("expected 2 genes for G1, got %d", len(genes["G1"]))
	}
	if len(genes["G2"]) != 1 {
		t.Errorf("expected 1 gene for G2, got %d", len(genes["G2"]))
	}
	if genes["G2"][0].Category != CategoryDrug {
		t.Errorf("vanA should be a drug gene, got %s", genes["G2"][0].Category)
	}
}
