// Package pipeline runs the whole analysis as one explicit pass:
// reference and hit files in, assemblies and summary files out. File
// paths come from the Config; nothing depends on the working directory
// or on call order.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jaglab/tascooc/internal/util"
	"github.com/jaglab/tascooc/logger"
	"github.com/jaglab/tascooc/pkg/analysis"
	"github.com/jaglab/tascooc/pkg/model"
	"github.com/jaglab/tascooc/pkg/render"
)

// Result summarises one analysis run.
type Result struct {
	RunID       string
	Assemblies  []*model.Assembly
	Pairs       []*analysis.Pair
	Matrix      *analysis.RatioMatrix
	Fraction    float64 // fraction of genomes with a TA/drug co-occurrence
	AbsMax      float64 // largest finite |log2 ratio| before adjustment
	SkippedRows int
	PairTable   string // output file paths, empty when not written
	RatioTable  string
	Heatmap     string
}

// Run executes the full co-occurrence analysis described by cfg.
func Run(cfg *Config) (*Result, error) {

	runID := "run-" + uuid.New().String()[:8]
	log := func(msg string, fields ...zap.Field) {
		logger.Info(msg, append([]zap.Field{zap.String("run_id", runID)}, fields...)...)
	}

	log("Starting co-occurrence analysis")

	genomeIDs, err := model.ReadGenomeList(cfg.Inputs.GenomeList)
	if err != nil {
		return nil, err
	}
	log("Genome list loaded", zap.Int("genomes", len(genomeIDs)))

	classify, err := loadClassifier(cfg.Inputs)
	if err != nil {
		return nil, err
	}

	genesByAsm, skipped, err := model.ReadHits(cfg.Inputs.Hits, classify, cfg.qualityFilter())
	if err != nil {
		return nil, err
	}
	log("Hit table loaded",
		zap.Int("genomes_with_hits", len(genesByAsm)),
		zap.Int("skipped_rows", skipped))

	assemblies, err := model.BuildAssemblies(genesByAsm, genomeIDs, cfg.Cluster.MaxGap)
	if err != nil {
		return nil, fmt.Errorf("build assemblies: %w", err)
	}

	pairs := analysis.CalcRatios(analysis.Cooccurrences(assemblies, cfg.Cooccur.MaxDist))
	matrix, absMax := analysis.UnstackRatios(pairs,
		cfg.Ratio.PVal10Threshold, cfg.Ratio.RatioThreshold, cfg.Ratio.RatioMax, cfg.Ratio.Adjust)
	matrix = analysis.FinalFilter(matrix, cfg.Report.Remove, cfg.Report.Keep, true)
	fraction := analysis.CoOccurrenceFraction(assemblies, cfg.Cooccur.MaxDist)

	log("Analysis done",
		zap.Int("pairs", len(pairs)),
		zap.Float64("cooccurrence_fraction", fraction),
		zap.Float64("abs_max_log2", absMax))

	res := &Result{
		RunID:       runID,
		Assemblies:  assemblies,
		Pairs:       pairs,
		Matrix:      matrix,
		Fraction:    fraction,
		AbsMax:      absMax,
		SkippedRows: skipped,
	}

	if err := writeOutputs(cfg, res); err != nil {
		return nil, err
	}

	return res, nil
}

// loadClassifier scans the three reference FASTA files and maps query
// ids to their category. Ids appearing in more than one reference set
// keep the first category and get a warning.
func loadClassifier(in Inputs) (func(string) model.Category, error) {

	sets := []struct {
		fpath string
		cat   model.Category
	}{
		{in.Toxins, model.CategoryToxin},
		{in.Antitoxins, model.CategoryAntitoxin},
		{in.Drugs, model.CategoryDrug},
	}

	byID := make(map[string]model.Category)
	for _, set := range sets {
		seqids, err := model.ScanSeqIDs(set.fpath)
		if err != nil {
			return nil, fmt.Errorf("load %s references: %w", set.cat, err)
		}
		for _, id := range seqids {
			if prev, ok := byID[id]; ok {
				logger.Warn("Reference id in multiple sets, keeping first",
					zap.String("seqid", id),
					zap.String("kept", prev.String()),
					zap.String("ignored", set.cat.String()))
				continue
			}
			byID[id] = set.cat
		}
	}

	return func(qseqid string) model.Category {
		return byID[qseqid]
	}, nil
}

// writeOutputs emits the pair table, the ratio matrix and the heatmap
// into the output directory, tagged with the run id.
func writeOutputs(cfg *Config, res *Result) error {

	if err := util.EnsureDir(cfg.OutDir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	res.PairTable = filepath.Join(cfg.OutDir, fmt.Sprintf("pairs_%s.tsv", res.RunID))
	if err := writeTSV(res.PairTable, func(f *os.File) error {
		return render.WritePairTable(res.Pairs, f)
	}); err != nil {
		return err
	}

	res.RatioTable = filepath.Join(cfg.OutDir, fmt.Sprintf("ratios_%s.tsv", res.RunID))
	if err := writeTSV(res.RatioTable, func(f *os.File) error {
		return render.WriteRatioMatrix(res.Matrix, f)
	}); err != nil {
		return err
	}

	if len(res.Matrix.TAs) == 0 || len(res.Matrix.Drugs) == 0 {
		logger.Warn("Ratio matrix is empty after filtering, skipping heatmap",
			zap.String("run_id", res.RunID))
		return nil
	}

	taCount, drugCount := analysis.OccurrenceCounts(res.Assemblies)
	res.Heatmap = filepath.Join(cfg.OutDir, fmt.Sprintf("heatmap_%s.png", res.RunID))
	if err := render.PlotRatios(res.Matrix, taCount, drugCount,
		cfg.Report.AltNames, cfg.Ratio.RatioMax, res.Heatmap); err != nil {
		return err
	}

	logger.Info("Outputs written",
		zap.String("run_id", res.RunID),
		zap.String("outdir", cfg.OutDir))

	return nil
}

func writeTSV(fpath string, write func(*os.File) error) error {
	f, err := os.Create(fpath)
	if err != nil {
		return fmt.Errorf("create %s: %w", fpath, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", fpath, err)
	}
	return nil
}
