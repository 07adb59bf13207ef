package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jaglab/tascooc/pkg/model"
)

// Inputs names the four analysis input files.
type Inputs struct {
	GenomeList string `yaml:"genome_list"` // assembly accessions, one per line
	Toxins     string `yaml:"toxins"`      // toxin reference proteins, FASTA
	Antitoxins string `yaml:"antitoxins"`  // antitoxin reference proteins, FASTA
	Drugs      string `yaml:"drugs"`       // CARD reference proteins, FASTA
	Hits       string `yaml:"hits"`        // precomputed alignment hits, TSV
}

// ClusterConfig controls locus clustering.
type ClusterConfig struct {
	MaxGap int `yaml:"max_gap"` // max inter-gene gap within a locus, bp
}

// FilterConfig drops low-confidence hits before clustering.
type FilterConfig struct {
	MinPPos   float64 `yaml:"min_ppos"`
	MinQCovs  float64 `yaml:"min_qcovs"`
	MaxEvalue float64 `yaml:"max_evalue"` // 0 disables the cutoff
}

// CooccurConfig controls the co-occurrence test.
type CooccurConfig struct {
	// MaxDist is the largest same-contig gap (bp) between a TA locus
	// and a determinant still counted as co-occurring. Negative means
	// co-presence in the assembly is enough.
	MaxDist int `yaml:"max_dist"`
}

// RatioConfig holds the thresholds of the ratio matrix step.
type RatioConfig struct {
	PVal10Threshold float64 `yaml:"pval10_threshold"`
	RatioThreshold  float64 `yaml:"ratio_threshold"`
	RatioMax        float64 `yaml:"ratio_max"`
	Adjust          bool    `yaml:"adjust"`
}

// ReportConfig shapes the final tables and figure.
type ReportConfig struct {
	Remove   []string          `yaml:"remove"`
	Keep     []string          `yaml:"keep"`
	AltNames map[string]string `yaml:"alt_names"`
}

// Config is the full YAML analysis configuration.
type Config struct {
	Inputs  Inputs        `yaml:"inputs"`
	OutDir  string        `yaml:"outdir"`
	Cluster ClusterConfig `yaml:"cluster"`
	Filter  FilterConfig  `yaml:"filter"`
	Cooccur CooccurConfig `yaml:"cooccur"`
	Ratio   RatioConfig   `yaml:"ratio"`
	Report  ReportConfig  `yaml:"report"`
}

// DefaultConfig returns the thresholds used when the YAML leaves them
// out.
func DefaultConfig() *Config {
	return &Config{
		OutDir:  "output",
		Cluster: ClusterConfig{MaxGap: 100},
		Filter:  FilterConfig{MinPPos: 50.0, MinQCovs: 50.0, MaxEvalue: 1e-5},
		Cooccur: CooccurConfig{MaxDist: -1},
		Ratio:   RatioConfig{PVal10Threshold: 0.05, RatioThreshold: 1.0, RatioMax: 6.0},
	}
}

// LoadConfig reads and validates the YAML analysis configuration,
// applying defaults for anything left out.
func LoadConfig(fpath string) (*Config, error) {

	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", fpath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", fpath, err)
	}

	return cfg, nil
}

// Validate checks that all required inputs are named and thresholds
// make sense.
func (c *Config) Validate() error {

	required := []struct {
		key string
		val string
	}{
		{"inputs.genome_list", c.Inputs.GenomeList},
		{"inputs.toxins", c.Inputs.Toxins},
		{"inputs.antitoxins", c.Inputs.Antitoxins},
		{"inputs.drugs", c.Inputs.Drugs},
		{"inputs.hits", c.Inputs.Hits},
	}
	for _, req := range required {
		if req.val == "" {
			return fmt.Errorf("missing %s", req.key)
		}
	}

	if c.Cluster.MaxGap < 0 {
		return fmt.Errorf("cluster.max_gap must not be negative")
	}
	if c.Ratio.RatioMax <= 0 {
		return fmt.Errorf("ratio.ratio_max must be positive")
	}

	return nil
}

// ResolvePaths anchors relative input and output paths at dataDir,
// leaving absolute paths alone.
func (c *Config) ResolvePaths(dataDir string) {
	c.Inputs.GenomeList = resolve(dataDir, c.Inputs.GenomeList)
	c.Inputs.Toxins = resolve(dataDir, c.Inputs.Toxins)
	c.Inputs.Antitoxins = resolve(dataDir, c.Inputs.Antitoxins)
	c.Inputs.Drugs = resolve(dataDir, c.Inputs.Drugs)
	c.Inputs.Hits = resolve(dataDir, c.Inputs.Hits)
	c.OutDir = resolve(dataDir, c.OutDir)
}

func resolve(dataDir, fpath string) string {
	if fpath == "" || filepath.IsAbs(fpath) {
		return fpath
	}
	return filepath.Join(dataDir, fpath)
}

// qualityFilter converts the config block to the model's filter.
func (c *Config) qualityFilter() model.QualityFilter {
	return model.QualityFilter{
		MinPPos:   c.Filter.MinPPos,
		MinQCovs:  c.Filter.MinQCovs,
		MaxEvalue: c.Filter.MaxEvalue,
	}
}
