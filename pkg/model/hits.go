package model

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jaglab/tascooc/logger"
	"go.uber.org/zap"
)

// The hits table is tab-separated with one translated hit per row:
//
//	asm_id  qseqid  contig  start  end  strand  ppos  qcovs  evalue  bitscore
//
// Lines starting with '#' are comments (blastn/tblastn -outfmt 7 style).
const hitFieldCount = 10

// HitRecord is one validated row of the hits table.
type HitRecord struct {
	AsmID    string
	QSeqID   string
	Contig   string
	Start    int
	End      int
	Strand   int
	PPos     float64
	QCovs    float64
	Evalue   float64
	Bitscore float64
}

// ParseHitRecord validates one tab-separated line into a HitRecord.
func ParseHitRecord(line string) (*HitRecord, error) {

	fields := strings.Split(line, "\t")
	if len(fields) != hitFieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", hitFieldCount, len(fields))
	}

	rec := &HitRecord{
		AsmID:  strings.TrimSpace(fields[0]),
		QSeqID: strings.TrimSpace(fields[1]),
		Contig: strings.TrimSpace(fields[2]),
	}

	if rec.AsmID == "" || rec.QSeqID == "" || rec.Contig == "" {
		return nil, fmt.Errorf("empty id field")
	}

	var err error
	if rec.Start, err = strconv.Atoi(fields[3]); err != nil {
		return nil, fmt.Errorf("bad start %q: %w", fields[3], err)
	}
	if rec.End, err = strconv.Atoi(fields[4]); err != nil {
		return nil, fmt.Errorf("bad end %q: %w", fields[4], err)
	}
	if rec.Start > rec.End {
		return nil, fmt.Errorf("start %d > end %d", rec.Start, rec.End)
	}
	if rec.Start < 1 {
		return nil, fmt.Errorf("start %d below 1 (coordinates are 1-based)", rec.Start)
	}

	switch strings.TrimSpace(fields[5]) {
	case "+", "1", "plus":
		rec.Strand = StrandPlus
	case "-", "-1", "minus":
		rec.Strand = StrandMinus
	default:
		return nil, fmt.Errorf("unknown strand %q", fields[5])
	}

	if rec.PPos, err = strconv.ParseFloat(fields[6], 64); err != nil {
		return nil, fmt.Errorf("bad ppos %q: %w", fields[6], err)
	}
	if rec.QCovs, err = strconv.ParseFloat(fields[7], 64); err != nil {
		return nil, fmt.Errorf("bad qcovs %q: %w", fields[7], err)
	}
	if rec.Evalue, err = strconv.ParseFloat(fields[8], 64); err != nil {
		return nil, fmt.Errorf("bad evalue %q: %w", fields[8], err)
	}
	if rec.Bitscore, err = strconv.ParseFloat(fields[9], 64); err != nil {
		return nil, fmt.Errorf("bad bitscore %q: %w", fields[9], err)
	}

	return rec, nil
}

// Gene builds the immutable gene value for a classified hit.
func (h *HitRecord) Gene(cat Category) *Gene {
	return &Gene{
		Name:     h.QSeqID,
		Contig:   h.Contig,
		Start:    h.Start,
		End:      h.End,
		Strand:   h.Strand,
		Category: cat,
		PPos:     h.PPos,
		QCovs:    h.QCovs,
		Evalue:   h.Evalue,
		Bitscore: h.Bitscore,
	}
}

// QualityFilter drops low-confidence hits before clustering.
// MaxEvalue == 0 means no e-value cutoff.
type QualityFilter struct {
	MinPPos   float64
	MinQCovs  float64
	MaxEvalue float64
}

func (f QualityFilter) Pass(h *HitRecord) bool {
	if h.PPos < f.MinPPos || h.QCovs < f.MinQCovs {
		return false
	}
	if f.MaxEvalue > 0 && h.Evalue > f.MaxEvalue {
		return false
	}
	return true
}

// ReadHits parses the hits table, classifying each query id through
// classify. Malformed rows and rows whose query matches no reference
// set are skipped with a warning; only I/O failures are fatal.
// Returns the genes grouped by assembly id and the skipped row count.
func ReadHits(fpath string, classify func(qseqid string) Category, filt QualityFilter) (map[string][]*Gene, int, error) {

	f, err := os.Open(fpath)
	if err != nil {
		return nil, 0, fmt.Errorf("open hits table: %w", err)
	}
	defer f.Close()

	genes := make(map[string][]*Gene)
	skipped := 0
	lineno := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, parseErr := ParseHitRecord(line)
		if parseErr != nil {
			logger.Warn("Skipping malformed hit row",
				zap.String("file", fpath),
				zap.Int("line", lineno),
				zap.Error(parseErr))
			skipped++
			continue
		}

		cat := classify(rec.QSeqID)
		if cat == CategoryUnknown {
			logger.Warn("Skipping hit with unclassified query",
				zap.String("file", fpath),
				zap.Int("line", lineno),
				zap.String("qseqid", rec.QSeqID))
			skipped++
			continue
		}

		if !filt.Pass(rec) {
			continue
		}

		genes[rec.AsmID] = append(genes[rec.AsmID], rec.Gene(cat))
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read hits table: %w", err)
	}

	return genes, skipped, nil
}
