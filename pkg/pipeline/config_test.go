package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	fpath := filepath.Join(t.TempDir(), "analysis.yaml")
	require.NoError(t, os.WriteFile(fpath, []byte(content), 0o644))
	return fpath
}

func TestLoadConfigDefaults(t *testing.T) {

	fpath := writeConfig(t, `
inputs:
  genome_list: genomes.txt
  toxins: toxins.fasta
  antitoxins: antitoxins.fasta
  drugs: card.fasta
  hits: hits.tsv
`)

	cfg, err := LoadConfig(fpath)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Cluster.MaxGap)
	assert.Equal(t, -1, cfg.Cooccur.MaxDist)
	assert.Equal(t, 6.0, cfg.Ratio.RatioMax)
	assert.Equal(t, "output", cfg.OutDir)
}

func TestLoadConfigMissingInput(t *testing.T) {

	fpath := writeConfig(t, `
inputs:
  genome_list: genomes.txt
  toxins: toxins.fasta
  drugs: card.fasta
  hits: hits.tsv
`)

	_, err := LoadConfig(fpath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "antitoxins")
}

func TestLoadConfigOverrides(t *testing.T) {

	fpath := writeConfig(t, `
inputs:
  genome_list: genomes.txt
  toxins: toxins.fasta
  antitoxins: antitoxins.fasta
  drugs: card.fasta
  hits: hits.tsv
cluster:
  max_gap: 250
cooccur:
  max_dist: 10000
ratio:
  pval10_threshold: 0.01
  ratio_threshold: 0.5
  ratio_max: 4
  adjust: true
report:
  remove: [aac(3)]
  alt_names:
    mazF/mazE: mazEF
`)

	cfg, err := LoadConfig(fpath)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Cluster.MaxGap)
	assert.Equal(t, 10000, cfg.Cooccur.MaxDist)
	assert.True(t, cfg.Ratio.Adjust)
	assert.Equal(t, []string{"aac(3)"}, cfg.Report.Remove)
	assert.Equal(t, "mazEF", cfg.Report.AltNames["mazF/mazE"])
}

func TestResolvePaths(t *testing.T) {

	cfg := DefaultConfig()
	cfg.Inputs.GenomeList = "genomes.txt"
	cfg.Inputs.Hits = "/abs/hits.tsv"

	cfg.ResolvePaths("/data")

	assert.Equal(t, filepath.Join("/data", "genomes.txt"), cfg.Inputs.GenomeList)
	assert.Equal(t, "/abs/hits.tsv", cfg.Inputs.Hits)
	assert.Equal(t, filepath.Join("/data", "output"), cfg.OutDir)
}
