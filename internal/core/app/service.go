package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"undoc/internal/core/errors"
	"undoc/internal/core/ports"
	"undoc/internal/data/history"
	"undoc/internal/engine/doc"
	"undoc/internal/shared/observability"
	"undoc/internal/shared/util"
)

type analysisService struct {
	app *App
}

var _ ports.AnalysisService = (*analysisService)(nil)

func NewAnalysisService(app *App) ports.AnalysisService {
	return &analysisService{app: app}
}

func (s *analysisService) Unwrap() *App {
	return s.app
}

func (a *App) AnalysisService() ports.AnalysisService {
	return NewAnalysisService(a)
}

func (s *analysisService) RunScan(ctx context.Context, req ports.ScanRequest) (ports.ScanResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "analysisService.RunScan",
		trace.WithAttributes(attribute.Int("scan.requested_paths", len(req.Paths))))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return ports.ScanResult{}, err
	}
	if s.app == nil {
		return ports.ScanResult{}, fmt.Errorf("app is required")
	}
	if s.app.Config == nil {
		return ports.ScanResult{}, fmt.Errorf("config is required")
	}

	start := time.Now()
	warnings := make([]string, 0)
	filesScanned := 0

	if len(req.Paths) > 0 {
		paths := normalizeScanPaths(req.Paths)
		files, err := s.app.ScanDirectories(paths, s.app.Config.Exclude.Dirs, s.app.Config.Exclude.Files)
		if err != nil {
			return ports.ScanResult{}, errors.AddContext(err, errors.CtxOperation, "scan_directories")
		}
		filesScanned = len(files)
		for i, filePath := range files {
			if err := ctx.Err(); err != nil {
				return ports.ScanResult{}, err
			}
			if _, err := s.app.CheckFile(ctx, filePath); err != nil {
				warnings = append(warnings, fmt.Sprintf("check file %s: %v", filePath, err))
				observability.ScanErrorsTotal.Inc()
			}
			if i%100 == 0 && s.app.Config.Limits.MaxHeapMB > 0 {
				if util.HeapAllocMB() > uint64(s.app.Config.Limits.MaxHeapMB) {
					debug.FreeOSMemory()
				}
			}
		}
	} else {
		if err := s.app.InitialScan(ctx); err != nil {
			return ports.ScanResult{}, errors.AddContext(err, errors.CtxOperation, "initial_scan")
		}
		filesScanned = s.app.FileCount()
	}

	snapshot := s.app.summarySnapshot()
	duration := time.Since(start)
	publishScanMetrics(snapshot, duration)
	s.saveSnapshot(ctx, snapshot, filesScanned, duration)

	span.SetAttributes(
		attribute.Int("scan.files", filesScanned),
		attribute.Int("scan.offenses", len(snapshot.Offenses)),
	)

	return ports.ScanResult{
		FilesScanned: filesScanned,
		Definitions:  snapshot.DefinitionCount,
		Offenses:     len(snapshot.Offenses),
		Warnings:     warnings,
	}, nil
}

func (s *analysisService) CheckFile(ctx context.Context, path string) (doc.FileResult, error) {
	if err := ctx.Err(); err != nil {
		return doc.FileResult{}, err
	}
	if s.app == nil {
		return doc.FileResult{}, fmt.Errorf("app is required")
	}
	if !s.app.codeParser.IsSupportedPath(path) {
		err := errors.New(errors.CodeNotSupported, "not a Ruby source file")
		return doc.FileResult{}, errors.AddContext(err, errors.CtxPath, path)
	}

	result, err := s.app.CheckFile(ctx, path)
	if err != nil {
		return doc.FileResult{}, errors.AddContext(err, errors.CtxPath, path)
	}
	return result, nil
}

func (s *analysisService) SummarySnapshot(ctx context.Context) (ports.SummarySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return ports.SummarySnapshot{}, err
	}
	if s.app == nil {
		return ports.SummarySnapshot{}, fmt.Errorf("app is required")
	}
	return s.app.summarySnapshot(), nil
}

func (s *analysisService) PrintSummary(ctx context.Context, req ports.SummaryPrintRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.app == nil {
		return fmt.Errorf("app is required")
	}
	s.app.printSummary(req.Duration, req.Snapshot, s.app.latestTrend(ctx))
	return nil
}

func (s *analysisService) SyncOutputs(ctx context.Context) (ports.SyncOutputsResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.SyncOutputsResult{}, err
	}
	if s.app == nil {
		return ports.SyncOutputsResult{}, fmt.Errorf("app is required")
	}
	if s.app.Config == nil {
		return ports.SyncOutputsResult{}, fmt.Errorf("config is required")
	}

	written, err := s.app.GenerateOutputs(ctx, s.app.summarySnapshot())
	if err != nil {
		return ports.SyncOutputsResult{}, err
	}
	return ports.SyncOutputsResult{Written: written}, nil
}

func publishScanMetrics(snapshot ports.SummarySnapshot, duration time.Duration) {
	observability.FilesScanned.Set(float64(snapshot.FileCount))
	observability.DefinitionsChecked.Set(float64(snapshot.DefinitionCount))
	observability.OffensesOpen.Set(float64(len(snapshot.Offenses)))
	for _, reason := range summaryExemptionOrder {
		observability.Exemptions.WithLabelValues(reason.String()).Set(float64(snapshot.Exemptions[reason]))
	}
	observability.ScanDuration.Observe(duration.Seconds())
}

func (s *analysisService) saveSnapshot(ctx context.Context, snapshot ports.SummarySnapshot, filesScanned int, duration time.Duration) {
	if s.app.History == nil {
		return
	}

	record := history.Snapshot{
		SchemaVersion:   history.SchemaVersion,
		Timestamp:       time.Now().UTC(),
		FileCount:       filesScanned,
		DefinitionCount: snapshot.DefinitionCount,
		OffenseCount:    len(snapshot.Offenses),
		BodilessCount:   snapshot.Exemptions[doc.ExemptBodiless],
		NamespaceCount:  snapshot.Exemptions[doc.ExemptNamespace],
		PrivateCount:    snapshot.Exemptions[doc.ExemptPrivate],
		DocumentedCount: snapshot.Exemptions[doc.ExemptDocumented],
		NodocCount:      snapshot.Exemptions[doc.ExemptSuppressed] + snapshot.Exemptions[doc.ExemptOuterSuppressed],
		DurationMS:      duration.Milliseconds(),
	}
	if err := s.app.History.SaveSnapshot(ctx, record); err != nil {
		slog.Warn("failed to save history snapshot", "error", err)
		observability.HistoryWriteErrorsTotal.Inc()
	}
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	return out
}

func normalizeScanPaths(paths []string) []string {
	cleaned := make([]string, 0, len(paths))
	seen := make(map[string]bool)
	for _, p := range paths {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		abs := trimmed
		if absPath, err := filepath.Abs(trimmed); err == nil {
			abs = absPath
		}
		abs = filepath.Clean(abs)
		if seen[abs] {
			continue
		}
		seen[abs] = true
		cleaned = append(cleaned, abs)
	}
	return cleaned
}
