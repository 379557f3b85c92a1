package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"undoc/internal/core/ports"
	"undoc/internal/shared/util"
	"undoc/internal/shared/version"
	"undoc/internal/ui/report"
	"undoc/internal/ui/report/formats"
)

type outputTargets struct {
	SARIF string
	TSV   string
}

func (a *App) resolveOutputTargets() (outputTargets, error) {
	root, err := a.outputRoot()
	if err != nil {
		return outputTargets{}, err
	}
	return outputTargets{
		SARIF: resolveOutputPath(strings.TrimSpace(a.Config.Output.SARIF), root),
		TSV:   resolveOutputPath(strings.TrimSpace(a.Config.Output.TSV), root),
	}, nil
}

// outputRoot anchors relative output paths and report-relative source
// paths at the working directory the tool was started from.
func (a *App) outputRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve output root: %w", err)
	}
	return cwd, nil
}

func resolveOutputPath(path, root string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// GenerateOutputs writes every configured artifact for the given rule
// state and returns the paths it touched.
func (a *App) GenerateOutputs(ctx context.Context, snapshot ports.SummarySnapshot) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	targets, err := a.resolveOutputTargets()
	if err != nil {
		return nil, err
	}
	root, err := a.outputRoot()
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, 2+len(a.Config.Output.UpdateMarkdown))

	if targets.SARIF != "" {
		data, err := formats.GenerateSARIF(root, snapshot.Offenses)
		if err != nil {
			return nil, fmt.Errorf("generate SARIF output: %w", err)
		}
		if err := writeArtifact(targets.SARIF, data); err != nil {
			return nil, fmt.Errorf("write SARIF output %q: %w", targets.SARIF, err)
		}
		written = append(written, targets.SARIF)
	}

	if targets.TSV != "" {
		tsv, err := formats.NewTSVGenerator(snapshot.Offenses).Generate()
		if err != nil {
			return nil, fmt.Errorf("generate TSV output: %w", err)
		}
		if err := writeArtifact(targets.TSV, []byte(tsv)); err != nil {
			return nil, fmt.Errorf("write TSV output %q: %w", targets.TSV, err)
		}
		written = append(written, targets.TSV)
	}

	reportData := formats.MarkdownReportData{
		FileCount:       snapshot.FileCount,
		DefinitionCount: snapshot.DefinitionCount,
		Offenses:        snapshot.Offenses,
		Exemptions:      snapshot.Exemptions,
	}

	for _, injection := range a.Config.Output.UpdateMarkdown {
		format := strings.ToLower(strings.TrimSpace(injection.Format))
		var content string
		switch format {
		case "", "summary":
			content, err = formats.NewMarkdownGenerator().Generate(reportData, formats.MarkdownReportOptions{
				ProjectRoot:         root,
				Version:             version.Version,
				GeneratedAt:         time.Now().UTC(),
				CollapsibleSections: true,
			})
			if err != nil {
				return nil, fmt.Errorf("generate markdown section: %w", err)
			}
		case "mermaid":
			diagram, genErr := formats.NewMermaidGenerator().Generate(reportData)
			if genErr != nil {
				return nil, fmt.Errorf("generate mermaid diagram: %w", genErr)
			}
			content = markdownDiagramBlock("mermaid", diagram)
		default:
			continue
		}

		target := resolveOutputPath(strings.TrimSpace(injection.File), root)
		if err := report.InjectSection(target, injection.Marker, content); err != nil {
			return nil, fmt.Errorf("inject %s section into %q with marker %q: %w", nonEmptyFormat(format), injection.File, injection.Marker, err)
		}
		written = append(written, target)
	}

	return uniqueStrings(written), nil
}

func writeArtifact(path string, data []byte) error {
	return util.WriteFileWithDirs(path, data, 0o644)
}

func markdownDiagramBlock(format, diagram string) string {
	trimmed := strings.TrimRight(diagram, "\n")
	return "```" + format + "\n" + trimmed + "\n```"
}

func nonEmptyFormat(format string) string {
	if format == "" {
		return "summary"
	}
	return format
}
