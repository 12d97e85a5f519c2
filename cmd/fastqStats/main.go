package main

import (
	"embed"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime/pprof"
	"strings"
	"time"

	"FastqQC/pkg/fastq"
	"FastqQC/pkg/fastqStats"

	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// os
var (
	ex, _  = os.Executable()
	exPath = filepath.Dir(ex)
)

// flag
var (
	fq1 = flag.String(
		"1",
		"",
		"input fq (R1), plain or .gz",
	)
	fq2 = flag.String(
		"2",
		"",
		"mate fq (R2) of paired-end run, optional",
	)
	outputPrefix = flag.String(
		"o",
		"",
		"output prefix, default is [R1 BaseName].qc",
	)
	maxRecords = flag.Int(
		"n",
		0,
		"max reads per file, 0 for all",
	)
	progress = flag.Int(
		"progress",
		fastqStats.DefaultProgressInterval,
		"log progress every N reads, 0 to disable",
	)
	phred64 = flag.Bool(
		"phred64",
		false,
		"quality encoded as phred+64",
	)
	adapter = flag.String(
		"adapter",
		"",
		"adapter seqs to count, comma separated",
	)
	parallel = flag.Bool(
		"parallel",
		false,
		"analyze R1 and R2 concurrently",
	)
	png = flag.Bool(
		"png",
		true,
		"plot length and quality histograms to [prefix].png",
	)
	html = flag.Bool(
		"html",
		false,
		"plot length and quality histograms to [prefix].html",
	)
	xlsx = flag.Bool(
		"xlsx",
		false,
		"write [prefix].summary.xlsx",
	)
	webhook = flag.String(
		"webhook",
		"",
		"wechatwork webhook key to notify",
	)
	debug = flag.Bool(
		"debug",
		false,
		"debug",
	)
	cpuProfile = flag.String(
		"cpu",
		"log.cpuProfile",
		"cpu profile, only with -debug",
	)
)

// embed etc
//
//go:embed etc/*.txt
var etcEMFS embed.FS

func init() {
	flag.StringVar(fq1, "i", "", "alias of -1")
	TitleSummary = osUtil.FS2Array(osUtil.OpenFS("etc/title.Summary.txt", exPath, etcEMFS))
}

func main() {
	flag.Parse()
	if *fq1 == "" {
		flag.PrintDefaults()
		log.Fatal("-1 required!")
	}
	if *debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		go LogMemStats()

		var LogCPUProfile = osUtil.Create(*cpuProfile)
		defer simpleUtil.DeferClose(LogCPUProfile)
		simpleUtil.CheckErr(pprof.StartCPUProfile(LogCPUProfile))
		defer pprof.StopCPUProfile()
	}

	var err = run()
	if err != nil {
		slog.Error("analysis failed", "err", err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func run() error {
	var now = time.Now()

	var cfg = fastqStats.DefaultConfig()
	cfg.MaxRecords = *maxRecords
	cfg.ProgressInterval = *progress
	if *phred64 {
		cfg.Encoding = fastq.Phred64
	}
	if *adapter != "" {
		cfg.Adapters = strings.Split(*adapter, ",")
	}

	var (
		runs   []*fastqStats.RunStats
		labels []string
		err    error
	)
	if *fq2 == "" {
		var stats *fastqStats.RunStats
		stats, err = fastqStats.Analyze(*fq1, cfg)
		if stats != nil {
			runs, labels = append(runs, stats), mateLabel[:1]
		}
	} else {
		var pair *fastqStats.PairStats
		pair, err = fastqStats.AnalyzePair(*fq1, *fq2, cfg, *parallel)
		for i, s := range []*fastqStats.RunStats{pair.R1, pair.R2} {
			if s != nil {
				runs, labels = append(runs, s), append(labels, mateLabel[i])
			}
		}
	}
	logFailure(err)

	if len(runs) > 0 {
		var prefix = *outputPrefix
		if prefix == "" {
			prefix = fqBaseName(*fq1) + ".qc"
		}
		simpleUtil.CheckErr(os.MkdirAll(filepath.Dir(prefix), 0755))
		WriteReports(prefix, runs, labels)
		Notify(*webhook, runs)
	}

	slog.Info("Done", "time", time.Since(now))
	return err
}

func logFailure(err error) {
	switch {
	case err == nil:
	case errors.Is(err, fastq.ErrSourceNotFound):
		slog.Error("input not found", "err", err)
	case errors.Is(err, fastqStats.ErrEmptyResult):
		slog.Error("no statistics", "err", err)
	default:
		slog.Error("read failed", "err", err)
	}
}

var fqSuffix = regexp.MustCompile(`\.(fq|fastq)(\.gz)?$`)

func fqBaseName(path string) string {
	return fqSuffix.ReplaceAllString(filepath.Base(path), "")
}
