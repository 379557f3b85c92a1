package ports

import (
	"context"
	"time"

	"undoc/internal/data/history"
	"undoc/internal/engine/doc"
	"undoc/internal/engine/parser"
)

// CodeParser abstracts source parsing and language-file support checks.
type CodeParser interface {
	ParseFile(path string, content []byte) (*parser.File, error)
	IsSupportedPath(path string) bool
}

// HistoryStore abstracts snapshot persistence for trend/report workflows.
type HistoryStore interface {
	SaveSnapshot(ctx context.Context, snapshot history.Snapshot) error
	LoadSnapshots(ctx context.Context, since time.Time) ([]history.Snapshot, error)
	Close() error
}

// ScanRequest defines a scan operation request for driving adapters.
type ScanRequest struct {
	Paths []string
}

// ScanResult summarizes a completed scan operation.
type ScanResult struct {
	FilesScanned int
	Definitions  int
	Offenses     int
	Warnings     []string
}

// SummarySnapshot captures the current rule state for driving adapters.
type SummarySnapshot struct {
	FileCount       int
	DefinitionCount int
	Offenses        []doc.Offense
	Exemptions      map[doc.Exemption]int
}

// SummaryPrintRequest captures terminal-summary rendering inputs.
type SummaryPrintRequest struct {
	Duration time.Duration
	Snapshot SummarySnapshot
}

// SyncOutputsResult contains generated output paths.
type SyncOutputsResult struct {
	Written []string
}

// AnalysisService defines the driving-port surface over scan use cases.
type AnalysisService interface {
	RunScan(ctx context.Context, req ScanRequest) (ScanResult, error)
	CheckFile(ctx context.Context, path string) (doc.FileResult, error)
	SummarySnapshot(ctx context.Context) (SummarySnapshot, error)
	PrintSummary(ctx context.Context, req SummaryPrintRequest) error
	SyncOutputs(ctx context.Context) (SyncOutputsResult, error)
}
