package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"undoc/internal/core/config"
	"undoc/internal/core/ports"
	"undoc/internal/core/watcher"
	"undoc/internal/data/history"
	"undoc/internal/engine/doc"
	"undoc/internal/engine/parser"
	"undoc/internal/shared/util"
)

// Update carries the rule state pushed to subscribers after each
// watch-mode rescan.
type Update struct {
	FileCount       int
	DefinitionCount int
	Offenses        []doc.Offense
	Exemptions      map[doc.Exemption]int
}

type App struct {
	Config     *config.Config
	History    ports.HistoryStore
	codeParser ports.CodeParser
	rule       *doc.Engine
	limiter    *util.Limiter

	updateMu sync.RWMutex
	onUpdate func(Update)

	// Latest per-file results, keyed by path. Watch mode replaces
	// entries in place so the aggregate stays incremental.
	resultsMu sync.RWMutex
	results   map[string]doc.FileResult

	activeWatcher *watcher.Watcher
}

// Dependencies carries the injectable collaborators for tests and
// embedders. CodeParser is required; History may be nil.
type Dependencies struct {
	CodeParser ports.CodeParser
	History    ports.HistoryStore
}

func New(cfg *config.Config) (*App, error) {
	loader, err := parser.NewGrammarLoader("")
	if err != nil {
		return nil, err
	}

	deps := Dependencies{CodeParser: parser.NewParser(loader)}
	if cfg != nil && cfg.DB.Enabled {
		store, err := openHistoryStore(cfg.DB.Path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		deps.History = store
	}

	return NewWithDependencies(cfg, deps)
}

func NewWithDependencies(cfg *config.Config, deps Dependencies) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.CodeParser == nil {
		return nil, fmt.Errorf("code parser dependency is required")
	}

	var limiter *util.Limiter
	if cfg.Limits.FilesPerSecond > 0 {
		burst := int(cfg.Limits.FilesPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = util.NewLimiter(cfg.Limits.FilesPerSecond, burst)
	}

	return &App{
		Config:     cfg,
		History:    deps.History,
		codeParser: deps.CodeParser,
		rule:       doc.NewEngine(doc.Config{RequireForPrivate: cfg.Rule.RequireForPrivate}),
		limiter:    limiter,
		results:    make(map[string]doc.FileResult),
	}, nil
}

// openHistoryStore moves a corrupt database aside and starts fresh
// rather than refusing to run; snapshots are advisory data.
func openHistoryStore(path string) (*history.Store, error) {
	store, err := history.Open(path)
	if err == nil {
		return store, nil
	}
	if !history.IsCorruptError(err) {
		return nil, err
	}

	backup := path + ".corrupt"
	if renameErr := os.Rename(path, backup); renameErr != nil {
		return nil, err
	}
	slog.Warn("history database corrupt, starting fresh", "path", path, "backup", backup)
	return history.Open(path)
}

func (a *App) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	if a.activeWatcher != nil {
		if err := a.activeWatcher.Close(); err != nil {
			slog.Warn("failed to close watcher", "error", err)
		}
		a.activeWatcher = nil
	}
	if a.History != nil {
		if err := a.History.Close(); err != nil {
			return err
		}
		a.History = nil
	}
	return nil
}

func (a *App) SetUpdateHandler(handler func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = handler
}

func (a *App) emitUpdate(update Update) {
	a.updateMu.RLock()
	handler := a.onUpdate
	a.updateMu.RUnlock()
	if handler != nil {
		handler(update)
	}
}

func (a *App) CurrentUpdate() Update {
	return updateFromSnapshot(a.summarySnapshot())
}

func updateFromSnapshot(snapshot ports.SummarySnapshot) Update {
	return Update{
		FileCount:       snapshot.FileCount,
		DefinitionCount: snapshot.DefinitionCount,
		Offenses:        snapshot.Offenses,
		Exemptions:      snapshot.Exemptions,
	}
}

func (a *App) storeResult(result doc.FileResult) {
	a.resultsMu.Lock()
	a.results[result.Path] = result
	a.resultsMu.Unlock()
}

func (a *App) dropResult(path string) {
	a.resultsMu.Lock()
	delete(a.results, path)
	a.resultsMu.Unlock()
}

func (a *App) FileCount() int {
	a.resultsMu.RLock()
	defer a.resultsMu.RUnlock()
	return len(a.results)
}

// summarySnapshot aggregates the latest per-file results. Offenses come
// out sorted by file then line so every consumer sees a stable order.
func (a *App) summarySnapshot() ports.SummarySnapshot {
	a.resultsMu.RLock()
	defer a.resultsMu.RUnlock()

	snapshot := ports.SummarySnapshot{
		FileCount:  len(a.results),
		Exemptions: make(map[doc.Exemption]int),
	}
	for _, result := range a.results {
		snapshot.DefinitionCount += result.Checked
		snapshot.Offenses = append(snapshot.Offenses, result.Offenses...)
		for reason, count := range result.Exempt {
			snapshot.Exemptions[reason] += count
		}
	}
	sort.Slice(snapshot.Offenses, func(i, j int) bool {
		if snapshot.Offenses[i].File != snapshot.Offenses[j].File {
			return snapshot.Offenses[i].File < snapshot.Offenses[j].File
		}
		return snapshot.Offenses[i].Line < snapshot.Offenses[j].Line
	})
	return snapshot
}
