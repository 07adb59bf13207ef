package model

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	fpath := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fpath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return fpath
}

func TestScanSeqIDs(t *testing.T) {

	fasta := ">WP_000254516.1 MazF toxin [Staphylococcus aureus]\n" +
		"MIRRGDVYLADLSPVQGSEQGGVRPVVI\n" +
		">gb|ABC123.1 some qualified id\n" +
		"MKT\n" +
		">plain\n" +
		"MAA\n"

	fpath := writeTemp(t, "refs.fasta", fasta)

	seqids, err := ScanSeqIDs(fpath)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"WP_000254516.1", "ABC123.1", "plain"}
	if !reflect.DeepEqual(seqids, want) {
		t.Errorf("got %v, want %v", seqids, want)
	}
}

func TestReadGenomeList(t *testing.T) {

	fpath := writeTemp(t, "genomes.txt", "# assemblies\nG1\n\n  G2  \nG3\n")

	ids, err := ReadGenomeList(fpath)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"G1", "G2", "G3"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("got %v, want %v", ids, want)
	}
}
