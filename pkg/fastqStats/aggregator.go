package fastqStats

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"FastqQC/pkg/fastq"

	"github.com/cloudflare/ahocorasick"
)

// DefaultProgressInterval is the number of accepted records between progress notices.
const DefaultProgressInterval = 10000

// ErrEmptyResult means a run accepted no records, so no statistics exist.
var ErrEmptyResult = errors.New("no valid FASTQ records")

type Config struct {
	// MaxRecords caps the accepted records, 0 means no cap.
	MaxRecords int
	// ProgressInterval logs progress every N accepted records, 0 disables it.
	ProgressInterval int
	Encoding         fastq.Encoding
	// Adapters are counted as exact substrings of the read sequence.
	Adapters []string
	// Logger receives progress and warnings, slog.Default() when nil.
	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		ProgressInterval: DefaultProgressInterval,
		Encoding:         fastq.Phred33,
	}
}

// RunStats is the finished summary of one run. It is not modified after
// Analyze returns it.
type RunStats struct {
	Name  string
	Count int

	LengthMean   float64
	LengthStdDev float64
	LengthMin    int
	LengthMax    int
	Bases        int

	QualityMean   float64
	QualityStdDev float64
	Class         Classification

	// skipped records and stream conditions
	Malformed int
	Empty     int
	// Capped is set when the cap stopped the run with valid records left unread.
	Capped    bool
	Truncated bool
	StreamErr error

	AdapterReads int

	// value:weight -> length:count
	LengthHistogram map[int]int
	// floor(mean quality):count
	QualityHistogram map[int]int
	// round(100*mean quality):count, for plotting the unfloored means
	QualityCentiHistogram map[int]int
}

// Skipped is the number of records dropped by the parser.
func (s *RunStats) Skipped() int {
	return s.Malformed + s.Empty
}

// Aggregator accumulates records of one run.
type Aggregator struct {
	Name string

	cfg     Config
	logger  *slog.Logger
	length  Welford
	quality Welford
	minLen  int
	maxLen  int
	bases   int

	lengthHist       map[int]int
	qualityHist      map[int]int
	qualityCentiHist map[int]int

	adapter      *ahocorasick.Matcher
	adapterReads int
}

func NewAggregator(name string, cfg Config) *Aggregator {
	var agg = &Aggregator{
		Name:             name,
		cfg:              cfg,
		logger:           cfg.Logger,
		minLen:           math.MaxInt,
		lengthHist:       make(map[int]int),
		qualityHist:      make(map[int]int),
		qualityCentiHist: make(map[int]int),
	}
	if agg.logger == nil {
		agg.logger = slog.Default()
	}
	var adapters []string
	for _, a := range cfg.Adapters {
		if a = strings.ToUpper(strings.TrimSpace(a)); a != "" {
			adapters = append(adapters, a)
		}
	}
	if len(adapters) > 0 {
		agg.adapter = ahocorasick.NewStringMatcher(adapters)
	}
	return agg
}

// Full reports whether the record cap has been reached.
func (agg *Aggregator) Full() bool {
	return agg.cfg.MaxRecords > 0 && agg.length.N() >= agg.cfg.MaxRecords
}

func (agg *Aggregator) Count() int {
	return agg.length.N()
}

// Add accepts rec unless the cap is reached. Records of zero length are
// rejected; the Scanner never yields them.
func (agg *Aggregator) Add(rec *fastq.Record) bool {
	var n = rec.Len()
	if n == 0 || agg.Full() {
		return false
	}
	var q = rec.MeanQuality()

	agg.length.Update(float64(n))
	agg.quality.Update(q)
	agg.minLen = min(agg.minLen, n)
	agg.maxLen = max(agg.maxLen, n)
	agg.bases += n
	agg.lengthHist[n]++
	agg.qualityHist[int(math.Floor(q))]++
	agg.qualityCentiHist[int(math.Round(q*100))]++

	if agg.adapter != nil && len(agg.adapter.Match(rec.Seq)) > 0 {
		agg.adapterReads++
	}

	var count = agg.length.N()
	if agg.cfg.ProgressInterval > 0 && count%agg.cfg.ProgressInterval == 0 {
		agg.logger.Info("progress", "name", agg.Name, "records", count)
	}
	return true
}

// Consume pulls records from s until end of stream or the cap, then
// finishes the run. A truncated stream, or a read error after at least one
// accepted record, is kept as a warning on the result.
func (agg *Aggregator) Consume(s *fastq.Scanner) (*RunStats, error) {
	for !agg.Full() && s.Scan() {
		agg.Add(s.Record())
	}

	var stats = agg.finish()
	stats.Malformed = s.Malformed()
	stats.Empty = s.Empty()
	var err = s.Err()
	if agg.Full() {
		// look one valid record past the cap; what it skips or hits is not counted
		stats.Capped = s.Scan()
	}

	if err != nil {
		switch {
		case errors.Is(err, fastq.ErrTruncated):
			agg.logger.Warn("truncated input", "name", agg.Name, "err", err)
		case stats.Count == 0:
			return nil, fmt.Errorf("%s: %w", agg.Name, err)
		default:
			agg.logger.Warn("read error, keeping records read so far", "name", agg.Name, "records", stats.Count, "err", err)
		}
		stats.Truncated = true
		stats.StreamErr = err
	}
	if stats.Skipped() > 0 {
		agg.logger.Warn("skipped records", "name", agg.Name, "malformed", stats.Malformed, "empty", stats.Empty)
	}
	if stats.Count == 0 {
		return nil, fmt.Errorf("%s: %w", agg.Name, ErrEmptyResult)
	}
	return stats, nil
}

func (agg *Aggregator) finish() *RunStats {
	var stats = &RunStats{
		Name:             agg.Name,
		Count:            agg.length.N(),
		LengthMean:       agg.length.Mean(),
		LengthStdDev:     agg.length.StdDev(),
		LengthMax:        agg.maxLen,
		Bases:            agg.bases,
		QualityMean:      agg.quality.Mean(),
		QualityStdDev:    agg.quality.StdDev(),
		AdapterReads:     agg.adapterReads,
		LengthHistogram:  agg.lengthHist,
		QualityHistogram: agg.qualityHist,

		QualityCentiHistogram: agg.qualityCentiHist,
	}
	if stats.Count > 0 {
		stats.LengthMin = agg.minLen
	}
	stats.Class = Classify(stats.QualityMean)
	return stats
}

// AnalyzeReader runs one complete analysis over r.
func AnalyzeReader(name string, r io.Reader, cfg Config) (*RunStats, error) {
	if cfg.Encoding == (fastq.Encoding{}) {
		cfg.Encoding = fastq.Phred33
	}
	var agg = NewAggregator(name, cfg)
	agg.logger.Info("start", "name", name, "maxRecords", cfg.MaxRecords, "encoding", cfg.Encoding.Name)
	return agg.Consume(fastq.NewScanner(r, cfg.Encoding))
}

// Analyze opens path (plain or .gz) and analyzes it. A missing file yields
// an error wrapping fastq.ErrSourceNotFound.
func Analyze(path string, cfg Config) (*RunStats, error) {
	var r, err = fastq.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return AnalyzeReader(path, r, cfg)
}
