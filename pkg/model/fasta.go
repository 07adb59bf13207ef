package model

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ScanSeqIDs collects the record ids from a FASTA file. The id is the
// header token before the first space; qualified ids such as
// "gb|WP_000254516.1" keep only the part after the last '|'.
func ScanSeqIDs(fpath string) ([]string, error) {

	f, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("open fasta: %w", err)
	}
	defer f.Close()

	var seqids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, ">") {
			continue
		}
		seqid := strings.TrimPrefix(line, ">")
		if i := strings.IndexByte(seqid, ' '); i >= 0 {
			seqid = seqid[:i]
		}
		if i := strings.LastIndexByte(seqid, '|'); i >= 0 {
			seqid = seqid[i+1:]
		}
		if seqid != "" {
			seqids = append(seqids, seqid)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan fasta: %w", err)
	}

	return seqids, nil
}

// ReadGenomeList reads assembly accessions, one per line. Blank lines
// and '#' comments are ignored.
func ReadGenomeList(fpath string) ([]string, error) {

	f, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("open genome list: %w", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan genome list: %w", err)
	}

	return ids, nil
}
