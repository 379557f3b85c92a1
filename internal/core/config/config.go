package config

import (
	"strings"
	"time"
)

type Config struct {
	Version       int           `toml:"version"`
	ScanPaths     []string      `toml:"scan_paths"`
	Rule          Rule          `toml:"rule"`
	Exclude       Exclude       `toml:"exclude"`
	Watch         Watch         `toml:"watch"`
	Alerts        Alerts        `toml:"alerts"`
	DB            Database      `toml:"db"`
	Output        Output        `toml:"output"`
	Observability Observability `toml:"observability"`
	Tracing       Tracing       `toml:"tracing"`
	MCP           MCP           `toml:"mcp"`
	Limits        Limits        `toml:"limits"`
}

type Rule struct {
	RequireForPrivate bool `toml:"require_for_private"`
}

type Exclude struct {
	Dirs         []string `toml:"dirs"`
	Files        []string `toml:"files"`
	UseGitignore *bool    `toml:"use_gitignore"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Alerts struct {
	Terminal *bool `toml:"terminal"`
	Beep     bool  `toml:"beep"`
}

type Database struct {
	Enabled     bool          `toml:"enabled"`
	Path        string        `toml:"path"`
	BusyTimeout time.Duration `toml:"busy_timeout"`
}

type Output struct {
	SARIF          string              `toml:"sarif"`
	TSV            string              `toml:"tsv"`
	UpdateMarkdown []MarkdownInjection `toml:"update_markdown"`
}

type MarkdownInjection struct {
	File   string `toml:"file"`
	Marker string `toml:"marker"`
	Format string `toml:"format"`
}

type Observability struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
}

type Tracing struct {
	Enabled     bool   `toml:"enabled"`
	Endpoint    string `toml:"endpoint"`
	ServiceName string `toml:"service_name"`
}

type MCP struct {
	Enabled bool `toml:"enabled"`
}

type Limits struct {
	FilesPerSecond float64 `toml:"files_per_second"`
	MaxHeapMB      int     `toml:"max_heap_mb"`
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if len(cfg.ScanPaths) == 0 {
		cfg.ScanPaths = []string{"."}
	}

	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{".git", "vendor", "node_modules", "tmp"}
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}

	if strings.TrimSpace(cfg.DB.Path) == "" {
		cfg.DB.Path = "undoc.db"
	}
	if cfg.DB.BusyTimeout <= 0 {
		cfg.DB.BusyTimeout = 5 * time.Second
	}

	if strings.TrimSpace(cfg.Observability.Listen) == "" {
		cfg.Observability.Listen = "127.0.0.1:9090"
	}

	if strings.TrimSpace(cfg.Tracing.Endpoint) == "" {
		cfg.Tracing.Endpoint = "127.0.0.1:4317"
	}
	if strings.TrimSpace(cfg.Tracing.ServiceName) == "" {
		cfg.Tracing.ServiceName = "undoc"
	}
}

// GitignoreEnabled defaults to true when the key is absent.
func (e Exclude) GitignoreEnabled() bool {
	if e.UseGitignore == nil {
		return true
	}
	return *e.UseGitignore
}

// TerminalEnabled defaults to true when the key is absent.
func (a Alerts) TerminalEnabled() bool {
	if a.Terminal == nil {
		return true
	}
	return *a.Terminal
}
