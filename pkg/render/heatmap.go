package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/jaglab/tascooc/pkg/analysis"
)

// ratioGrid adapts a RatioMatrix to the heatmap grid interface. Rows
// are flipped so the first (highest-count) TA system is drawn at the
// top of the figure.
type ratioGrid struct {
	m *analysis.RatioMatrix
}

func (g ratioGrid) Dims() (c, r int) { return len(g.m.Drugs), len(g.m.TAs) }

func (g ratioGrid) Z(c, r int) float64 {
	return g.m.Values[len(g.m.TAs)-1-r][c]
}

func (g ratioGrid) X(c int) float64 { return float64(c) }
func (g ratioGrid) Y(r int) float64 { return float64(r) }

// divergingPalette renders RatioColor as a plot palette.
type divergingPalette struct {
	colors []color.Color
}

func (p divergingPalette) Colors() []color.Color { return p.colors }

func newDivergingPalette(n int) divergingPalette {
	colors := make([]color.Color, n)
	for i := range colors {
		ratio := -1.0 + 2.0*float64(i)/float64(n-1)
		colors[i] = RatioColor(ratio)
	}
	return divergingPalette{colors: colors}
}

// PlotRatios draws the TA x determinant heatmap with per-cell |log2|
// annotations and count-labelled axes, and saves it under fpath (the
// extension selects the format, typically .png).
func PlotRatios(m *analysis.RatioMatrix, taCount, drugCount map[string]int, altNames map[string]string, ratioMax float64, fpath string) error {

	if len(m.TAs) == 0 || len(m.Drugs) == 0 {
		return fmt.Errorf("nothing to plot: ratio matrix is empty")
	}

	p := plot.New()
	p.Title.Text = "Occurrence rate ratio of drug determinants and TA systems"

	hm := plotter.NewHeatMap(ratioGrid{m}, newDivergingPalette(255))
	hm.Min = -ratioMax
	hm.Max = ratioMax
	p.Add(hm)

	drugLabels := make([]string, len(m.Drugs))
	for j, drug := range m.Drugs {
		drugLabels[j] = fmt.Sprintf("%s (%d)", displayName(drug, altNames), drugCount[drug])
	}
	taLabels := make([]string, len(m.TAs))
	for i, ta := range m.TAs {
		// Reversed to match the flipped grid rows.
		taLabels[len(m.TAs)-1-i] = fmt.Sprintf("%s (%d)", displayName(ta, altNames), taCount[ta])
	}

	p.NominalX(drugLabels...)
	p.NominalY(taLabels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	annotations, err := cellAnnotations(m)
	if err != nil {
		return fmt.Errorf("annotate heatmap: %w", err)
	}
	if annotations != nil {
		p.Add(annotations)
	}

	width := vg.Length(len(m.Drugs))*vg.Centimeter + 5*vg.Centimeter
	height := vg.Length(len(m.TAs))*vg.Centimeter + 5*vg.Centimeter

	if err := p.Save(width, height, fpath); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}

	return nil
}

// cellAnnotations labels every non-zero cell with its |log2 ratio|.
func cellAnnotations(m *analysis.RatioMatrix) (*plotter.Labels, error) {

	var xys plotter.XYs
	var texts []string

	rows := len(m.TAs)
	for i, row := range m.Values {
		for j, v := range row {
			if v == 0 {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(j), Y: float64(rows - 1 - i)})
			texts = append(texts, fmt.Sprintf("%.1f", math.Abs(v)))
		}
	}

	if len(texts) == 0 {
		return nil, nil
	}

	return plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
}

func displayName(name string, altNames map[string]string) string {
	if alt, ok := altNames[name]; ok {
		return alt
	}
	return name
}
