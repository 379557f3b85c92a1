package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"undoc/internal/core/config"
)

func TestGenerateOutputs_WritesSARIFAndTSV(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := writeSource(t, tmpDir, "invoice.rb")
	outDir := t.TempDir()
	sarifPath := filepath.Join(outDir, "reports", "undoc.sarif")
	tsvPath := filepath.Join(outDir, "undoc.tsv")

	cfg := &config.Config{
		ScanPaths: []string{tmpDir},
		Output: config.Output{
			SARIF: sarifPath,
			TSV:   tsvPath,
		},
	}
	app, err := NewWithDependencies(cfg, Dependencies{
		CodeParser: stubCodeParser{parsedFile: undocumentedClassFile("Invoice")},
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if _, err := app.CheckFile(ctx, filePath); err != nil {
		t.Fatal(err)
	}

	written, err := app.GenerateOutputs(ctx, app.summarySnapshot())
	if err != nil {
		t.Fatalf("generate outputs: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 written paths, got %v", written)
	}

	sarifData, err := os.ReadFile(sarifPath)
	if err != nil {
		t.Fatalf("read sarif: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(sarifData, &doc); err != nil {
		t.Fatalf("sarif is not valid JSON: %v", err)
	}
	if !strings.Contains(string(sarifData), "UNDOC001") {
		t.Fatal("expected sarif to reference the rule id")
	}

	tsvData, err := os.ReadFile(tsvPath)
	if err != nil {
		t.Fatalf("read tsv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(tsvData), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "File\tLine") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
}

func TestGenerateOutputs_InjectsMarkdownSections(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := writeSource(t, tmpDir, "invoice.rb")
	readme := filepath.Join(t.TempDir(), "README.md")
	seed := strings.Join([]string{
		"# Project",
		"",
		"<!-- undoc:coverage:start -->",
		"stale",
		"<!-- undoc:coverage:end -->",
		"",
		"<!-- undoc:chart:start -->",
		"stale",
		"<!-- undoc:chart:end -->",
		"",
	}, "\n")
	if err := os.WriteFile(readme, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		ScanPaths: []string{tmpDir},
		Output: config.Output{
			UpdateMarkdown: []config.MarkdownInjection{
				{File: readme, Marker: "coverage"},
				{File: readme, Marker: "chart", Format: "mermaid"},
			},
		},
	}
	app, err := NewWithDependencies(cfg, Dependencies{
		CodeParser: stubCodeParser{parsedFile: undocumentedClassFile("Invoice")},
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if _, err := app.CheckFile(ctx, filePath); err != nil {
		t.Fatal(err)
	}

	written, err := app.GenerateOutputs(ctx, app.summarySnapshot())
	if err != nil {
		t.Fatalf("generate outputs: %v", err)
	}
	if len(written) != 1 || written[0] != readme {
		t.Fatalf("expected the readme once in written list, got %v", written)
	}

	content, err := os.ReadFile(readme)
	if err != nil {
		t.Fatal(err)
	}
	text := string(content)
	if strings.Contains(text, "stale") {
		t.Fatal("expected stale sections replaced")
	}
	if !strings.Contains(text, "## Missing Documentation") {
		t.Fatal("expected summary section injected")
	}
	if !strings.Contains(text, "```mermaid") {
		t.Fatal("expected mermaid block injected")
	}
	if !strings.Contains(text, "# Project") {
		t.Fatal("expected content outside markers preserved")
	}
}

func TestResolveOutputPath(t *testing.T) {
	if got := resolveOutputPath("", "/root"); got != "" {
		t.Fatalf("expected empty path passthrough, got %q", got)
	}
	if got := resolveOutputPath("out/undoc.tsv", "/root"); got != filepath.Join("/root", "out", "undoc.tsv") {
		t.Fatalf("unexpected relative resolution: %q", got)
	}
	abs := filepath.Join(string(filepath.Separator), "tmp", "undoc.sarif")
	if got := resolveOutputPath(abs, "/root"); got != abs {
		t.Fatalf("expected absolute path kept, got %q", got)
	}
}
