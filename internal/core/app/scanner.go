package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"

	"undoc/internal/core/errors"
	"undoc/internal/engine/doc"
	"undoc/internal/shared/observability"
)

func (a *App) InitialScan(ctx context.Context) error {
	roots := uniqueScanRoots(a.Config.ScanPaths)
	files, err := a.ScanDirectories(roots, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return err
	}

	for _, filePath := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := a.CheckFile(ctx, filePath); err != nil {
			slog.Warn("failed to check file", "path", filePath, "error", err)
			observability.ScanErrorsTotal.Inc()
		}
	}
	return nil
}

func uniqueScanRoots(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		normalized := filepath.Clean(p)
		if abs, err := filepath.Abs(normalized); err == nil {
			normalized = filepath.Clean(abs)
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		roots = append(roots, normalized)
	}
	sort.Strings(roots)
	return roots
}

// ScanDirectories walks the given roots and returns every supported
// source file, honoring dir/file glob excludes and, when enabled, each
// root's .gitignore.
func (a *App) ScanDirectories(paths []string, excludeDirs, excludeFiles []string) ([]string, error) {
	var files []string

	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	for _, root := range paths {
		ignoreMatcher := a.loadGitignore(root)

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}

			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				if ignoreMatcher != nil && rel != "." && ignoreMatcher.MatchesPath(rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if !a.codeParser.IsSupportedPath(path) {
				return nil
			}

			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			if ignoreMatcher != nil && ignoreMatcher.MatchesPath(rel) {
				return nil
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (a *App) loadGitignore(root string) *ignore.GitIgnore {
	if a.Config == nil || !a.Config.Exclude.GitignoreEnabled() {
		return nil
	}
	matcher, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		// Absent or unreadable .gitignore just means nothing to honor.
		return nil
	}
	return matcher
}

// CheckFile parses one file and runs the documentation rule over every
// class and module definition in it.
func (a *App) CheckFile(ctx context.Context, path string) (doc.FileResult, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx, 1); err != nil {
			return doc.FileResult{}, err
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return doc.FileResult{}, errors.Wrap(err, errors.CodeIOError, "read source file")
	}

	parseStart := time.Now()
	file, err := a.codeParser.ParseFile(path, content)
	if err != nil {
		return doc.FileResult{}, errors.Wrap(err, errors.CodeParseError, "parse source file")
	}
	observability.ParsingDuration.WithLabelValues(file.Language).Observe(time.Since(parseStart).Seconds())

	result := a.rule.CheckFile(file)
	a.storeResult(result)
	return result, nil
}

// HandleChanges re-checks changed files and refreshes outputs. The
// watcher delivers paths already debounced.
func (a *App) HandleChanges(paths []string) {
	slog.Info("detected changes", "count", len(paths))
	observability.WatcherRescansTotal.Inc()
	start := time.Now()
	ctx := context.Background()

	for _, path := range paths {
		if !a.codeParser.IsSupportedPath(path) {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			a.dropResult(path)
			continue
		}

		if _, err := a.CheckFile(ctx, path); err != nil {
			slog.Warn("failed to re-check file", "path", path, "error", err)
			observability.ScanErrorsTotal.Inc()
		}
	}

	snapshot := a.summarySnapshot()
	if _, err := a.GenerateOutputs(ctx, snapshot); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}

	a.printSummary(time.Since(start), snapshot, a.latestTrend(ctx))
	a.emitUpdate(updateFromSnapshot(snapshot))

	if a.Config.Alerts.Beep && len(snapshot.Offenses) > 0 {
		fmt.Print("\a")
	}
}
