package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"undoc/internal/core/ports"
	"undoc/internal/data/history"
	"undoc/internal/engine/doc"
)

var summaryExemptionOrder = []doc.Exemption{
	doc.ExemptDocumented,
	doc.ExemptNamespace,
	doc.ExemptBodiless,
	doc.ExemptPrivate,
	doc.ExemptSuppressed,
	doc.ExemptOuterSuppressed,
}

func (a *App) printSummary(duration time.Duration, snapshot ports.SummarySnapshot, trend *history.TrendPoint) {
	if !a.Config.Alerts.TerminalEnabled() {
		return
	}

	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Scan: %d files, %d definitions in %v\n", snapshot.FileCount, snapshot.DefinitionCount, duration)

	if len(snapshot.Offenses) > 0 {
		fmt.Printf("⚠️  FOUND %d MISSING DOC COMMENTS:\n", len(snapshot.Offenses))
		for _, o := range snapshot.Offenses {
			fmt.Printf("   %s:%d %s %s\n", o.File, o.Line, o.Kind, o.Name)
		}
	} else {
		fmt.Println("✅ All top-level classes and modules documented.")
	}

	if parts := exemptionParts(snapshot.Exemptions); len(parts) > 0 {
		fmt.Printf("📊 Exemptions: %s\n", strings.Join(parts, " "))
	}

	if trend != nil {
		fmt.Printf("📈 Since previous scan: files %+d, definitions %+d, offenses %+d\n",
			trend.DeltaFiles, trend.DeltaDefinitions, trend.DeltaOffenses)
	}
	fmt.Println(strings.Repeat("-", 40))
}

func exemptionParts(exemptions map[doc.Exemption]int) []string {
	parts := make([]string, 0, len(exemptions))
	for _, reason := range summaryExemptionOrder {
		if count := exemptions[reason]; count > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", reason, count))
		}
	}
	return parts
}

// latestTrend resolves the most recent snapshot-to-snapshot deltas, or
// nil when fewer than two scans are on record.
func (a *App) latestTrend(ctx context.Context) *history.TrendPoint {
	if a.History == nil {
		return nil
	}
	snapshots, err := a.History.LoadSnapshots(ctx, time.Time{})
	if err != nil {
		slog.Warn("failed to load history snapshots", "error", err)
		return nil
	}
	points := history.Trend(snapshots)
	if len(points) < 2 {
		return nil
	}
	latest := points[len(points)-1]
	return &latest
}
