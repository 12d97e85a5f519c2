package fastqStats

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	math2 "github.com/liserjrqlxue/goUtil/math"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// SkippedRate is the fraction of parsed records that were skipped.
func (s *RunStats) SkippedRate() float64 {
	return math2.DivisionInt(s.Skipped(), s.Count+s.Skipped())
}

// LogSummary logs the final numeric summary and the classification.
func (s *RunStats) LogSummary(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info(
		"Summary",
		"name", s.Name,
		"reads", s.Count,
		slog.Group("length",
			"mean", fmt.Sprintf("%.2f ± %.2f", s.LengthMean, s.LengthStdDev),
			"min", s.LengthMin,
			"max", s.LengthMax,
		),
		slog.Group("quality",
			"mean", fmt.Sprintf("%.2f ± %.2f", s.QualityMean, s.QualityStdDev),
			"class", s.Class.String(),
		),
		"skipped", s.Skipped(),
		"capped", s.Capped,
		"truncated", s.Truncated,
	)
}

// WriteStatsTxt writes a human-readable report of one run.
func (s *RunStats) WriteStatsTxt(file *os.File) {
	fmtUtil.Fprintf(file, "Name\t\t\t= %s\n", s.Name)
	fmtUtil.Fprintf(file, "TotalReads\t\t= %d\n", s.Count)
	fmtUtil.Fprintf(file, "+TotalBases\t\t= %d\n", s.Bases)
	fmtUtil.Fprintf(file, "+ReadLength\t\t= %.2f ± %.2f\t[%d, %d]\n", s.LengthMean, s.LengthStdDev, s.LengthMin, s.LengthMax)
	fmtUtil.Fprintf(file, "+AverageQuality\t\t= %.2f ± %.2f\n", s.QualityMean, s.QualityStdDev)
	fmtUtil.Fprintf(file, "+Classification\t\t= %s\n", s.Class)
	fmtUtil.Fprintf(file, "SkippedReads\t\t= %d\t%.4f%%\n", s.Skipped(), s.SkippedRate()*100)
	fmtUtil.Fprintf(file, "+MalformedReads\t\t= %d\n", s.Malformed)
	fmtUtil.Fprintf(file, "+EmptyReads\t\t= %d\n", s.Empty)
	fmtUtil.Fprintf(file, "AdapterReads\t\t= %d\t%.4f%%\n", s.AdapterReads, math2.DivisionInt(s.AdapterReads, s.Count)*100)
	fmtUtil.Fprintf(file, "Capped\t\t\t= %v\n", s.Capped)
	fmtUtil.Fprintf(file, "Truncated\t\t= %v\n", s.Truncated)
}

// Markdown is a short report for chat notifications.
func (s *RunStats) Markdown() string {
	return fmt.Sprintf(
		"**%s**\n> reads: %d\n> length: %.2f ± %.2f\n> quality: %.2f ± %.2f (%s)\n> skipped: %d\n",
		s.Name, s.Count, s.LengthMean, s.LengthStdDev, s.QualityMean, s.QualityStdDev, s.Class, s.Skipped(),
	)
}

// SummaryRow is one row of the summary table, in etc/title.Summary.txt order.
func (s *RunStats) SummaryRow() []any {
	return []any{
		s.Name, s.Count, s.Bases,
		s.LengthMean, s.LengthStdDev, s.LengthMin, s.LengthMax,
		s.QualityMean, s.QualityStdDev, s.Class.String(),
		s.Malformed, s.Empty, s.SkippedRate(),
		s.AdapterReads, s.Capped, s.Truncated,
	}
}

// SummaryTxt writes title and one tab-separated row per run to path.
func SummaryTxt(path string, title []string, runs []*RunStats) {
	var out = osUtil.Create(path)
	defer simpleUtil.DeferClose(out)

	fmtUtil.FprintStringArray(out, title, "\t")
	for _, s := range runs {
		var row []string
		for _, v := range s.SummaryRow() {
			switch v := v.(type) {
			case float64:
				row = append(row, fmt.Sprintf("%.4f", v))
			default:
				row = append(row, fmt.Sprint(v))
			}
		}
		fmtUtil.FprintStringArray(out, row, "\t")
	}
}

// WriteHistogram sort hist and write to path with title [key weight]
func WriteHistogram(path, key string, hist map[int]int) {
	out := osUtil.Create(path)
	fmtUtil.Fprintln(out, key+"\tweight")
	for _, k := range sortedKeys(hist) {
		fmtUtil.Fprintf(out, "%d\t%d\n", k, hist[k])
	}
	simpleUtil.CheckErr(out.Close())
}

func sortedKeys(hist map[int]int) []int {
	var keys = make([]int, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
