package fastqStats

import (
	"errors"
	"fmt"
	"sync"
)

// PairStats holds the independent summaries of the two mate files of a
// paired-end run. A nil side failed; see the error from AnalyzePair.
type PairStats struct {
	R1 *RunStats
	R2 *RunStats
}

// AnalyzePair analyzes both mate files in isolation, one after the other
// or, with parallel, in two goroutines. Results are identical either way.
// The returned error joins the per-file errors; a partial PairStats is
// still returned when only one side failed.
func AnalyzePair(r1, r2 string, cfg Config, parallel bool) (*PairStats, error) {
	var (
		pair       = &PairStats{}
		err1, err2 error
	)
	if parallel {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			pair.R1, err1 = Analyze(r1, cfg)
		}()
		go func() {
			defer wg.Done()
			pair.R2, err2 = Analyze(r2, cfg)
		}()
		wg.Wait()
	} else {
		pair.R1, err1 = Analyze(r1, cfg)
		pair.R2, err2 = Analyze(r2, cfg)
	}

	if err1 != nil {
		err1 = fmt.Errorf("R1: %w", err1)
	}
	if err2 != nil {
		err2 = fmt.Errorf("R2: %w", err2)
	}
	return pair, errors.Join(err1, err2)
}

// Runs returns the successful summaries in R1, R2 order.
func (p *PairStats) Runs() []*RunStats {
	var runs []*RunStats
	for _, s := range []*RunStats{p.R1, p.R2} {
		if s != nil {
			runs = append(runs, s)
		}
	}
	return runs
}
