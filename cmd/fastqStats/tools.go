package main

import (
	"log/slog"
	"runtime"
	"strings"
	"time"

	"FastqQC/pkg/fastqStats"
	"FastqQC/pkg/wechatwork"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// WriteReports writes the text, histogram and optional figure/xlsx
// reports of runs under prefix, histograms named by labels[i].
func WriteReports(prefix string, runs []*fastqStats.RunStats, labels []string) {
	var stats = osUtil.Create(prefix + ".stats.txt")
	defer simpleUtil.DeferClose(stats)

	for i, s := range runs {
		s.LogSummary(nil)
		if i > 0 {
			fmtUtil.Fprintln(stats)
		}
		s.WriteStatsTxt(stats)

		var label = labels[i]
		fastqStats.WriteHistogram(prefix+"."+label+".length.histogram.txt", "length", s.LengthHistogram)
		fastqStats.WriteHistogram(prefix+"."+label+".quality.histogram.txt", "quality", s.QualityHistogram)
	}
	fastqStats.SummaryTxt(prefix+".summary.txt", TitleSummary, runs)

	if *xlsx {
		slog.Info("save xlsx", "path", prefix+".summary.xlsx")
		fastqStats.SummaryXlsx(prefix+".summary.xlsx", TitleSummary, runs)
	}
	if *html {
		slog.Info("plot html", "path", prefix+".html")
		fastqStats.PlotHTML(prefix+".html", runs)
	}
	if *png {
		slog.Info("plot png", "path", prefix+".png")
		if err := fastqStats.PlotPNG(prefix+".png", runs); err != nil {
			slog.Error("plot png", "err", err)
		}
	}
}

// Notify posts the run summaries to a wechatwork group, a no-op without key.
func Notify(key string, runs []*fastqStats.RunStats) {
	var sb strings.Builder
	for _, s := range runs {
		sb.WriteString(s.Markdown())
	}
	if err := wechatwork.NewNotificationSender(key).SendMarkdown(sb.String()); err != nil {
		slog.Error("notify", "err", err)
	}
}

// LogMemStats samples memory every second into log.MemStats.txt.
func LogMemStats() {
	var m runtime.MemStats
	var logFile = osUtil.Create("log.MemStats.txt")
	defer simpleUtil.DeferClose(logFile)
	logger := slog.New(slog.NewTextHandler(logFile, nil))
	for {
		runtime.ReadMemStats(&m)
		logger.Info(
			"memStats",
			"Alloc", m.Alloc,
			"TotalAlloc", m.TotalAlloc,
			"Sys", m.Sys,
			"HeapAlloc", m.HeapAlloc,
			"HeapInuse", m.HeapInuse,
			"NumGC", m.NumGC,
		)
		time.Sleep(1 * time.Second)
	}
}
