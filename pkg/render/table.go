package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jaglab/tascooc/pkg/analysis"
)

// WritePairTable emits the co-occurrence pair table as TSV.
func WritePairTable(pairs []*analysis.Pair, w io.Writer) error {

	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'

	header := []string{"ta", "drug", "corr", "ta_count", "drug_count", "tot", "pval_10", "ratio", "log2_ratio"}
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("write pair table header: %w", err)
	}

	for _, p := range pairs {
		row := []string{
			p.TA,
			p.Drug,
			strconv.Itoa(p.Corr),
			strconv.Itoa(p.TACount),
			strconv.Itoa(p.DrugCount),
			strconv.Itoa(p.Tot),
			formatFloat(p.PVal10),
			formatFloat(p.Ratio),
			formatFloat(p.Log2Ratio),
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("write pair table row: %w", err)
		}
	}

	tsv.Flush()
	return tsv.Error()
}

// WriteRatioMatrix emits the pivoted ratio matrix as TSV, determinants
// as columns.
func WriteRatioMatrix(m *analysis.RatioMatrix, w io.Writer) error {

	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'

	header := append([]string{"ta"}, m.Drugs...)
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("write ratio matrix header: %w", err)
	}

	for i, ta := range m.TAs {
		row := make([]string, 0, len(m.Drugs)+1)
		row = append(row, ta)
		for _, v := range m.Values[i] {
			row = append(row, formatFloat(v))
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("write ratio matrix row: %w", err)
		}
	}

	tsv.Flush()
	return tsv.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
