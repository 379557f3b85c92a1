package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "undoc_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "undoc_scan_seconds",
		Help:    "Time spent on a full scan.",
		Buckets: prometheus.DefBuckets,
	})

	FilesScanned = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "undoc_files_scanned",
		Help: "Number of files covered by the latest scan.",
	})

	DefinitionsChecked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "undoc_definitions_checked",
		Help: "Number of class and module definitions covered by the latest scan.",
	})

	OffensesOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "undoc_offenses",
		Help: "Number of missing documentation offenses in the latest scan.",
	})

	Exemptions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "undoc_exemptions",
		Help: "Definitions excused from documentation in the latest scan, by reason.",
	}, []string{"reason"})

	ScanErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "undoc_scan_errors_total",
		Help: "Total number of files that failed to parse or read during scans.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "undoc_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatcherRescansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "undoc_watcher_rescans_total",
		Help: "Total number of rescans triggered by the watcher.",
	})

	HistoryWriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "undoc_history_write_errors_total",
		Help: "Total number of failed snapshot writes to the history store.",
	})
)
