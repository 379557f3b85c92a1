package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

func validateVersion(cfg *Config) error {
	if cfg.Version < 1 {
		return fmt.Errorf("version must be >= 1, got %d", cfg.Version)
	}
	if cfg.Version > 1 {
		return fmt.Errorf("unsupported config version %d; the only supported version is 1", cfg.Version)
	}
	return nil
}

func validateScanPaths(cfg *Config) error {
	for i, path := range cfg.ScanPaths {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("scan_paths[%d] must not be empty", i)
		}
	}
	return nil
}

func validateExclude(cfg *Config) error {
	for i, dir := range cfg.Exclude.Dirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("exclude.dirs[%d] must not be empty", i)
		}
	}
	for i, pattern := range cfg.Exclude.Files {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("exclude.files[%d] must not be empty", i)
		}
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("exclude.files[%d]: invalid pattern %q: %v", i, pattern, err)
		}
	}
	return nil
}

func validateDatabase(cfg *Config) error {
	if cfg.DB.Enabled && strings.TrimSpace(cfg.DB.Path) == "" {
		return fmt.Errorf("db.path must not be empty when db.enabled=true")
	}
	return nil
}

func validateOutput(cfg *Config) error {
	seen := make(map[string]bool, len(cfg.Output.UpdateMarkdown))
	for i, injection := range cfg.Output.UpdateMarkdown {
		ref := fmt.Sprintf("output.update_markdown[%d]", i)
		file := strings.TrimSpace(injection.File)
		if file == "" {
			return fmt.Errorf("%s.file must not be empty", ref)
		}
		marker := strings.TrimSpace(injection.Marker)
		if marker == "" {
			return fmt.Errorf("%s.marker must not be empty", ref)
		}
		switch strings.ToLower(strings.TrimSpace(injection.Format)) {
		case "", "summary", "mermaid":
		default:
			return fmt.Errorf("%s.format must be summary or mermaid, got %q", ref, injection.Format)
		}
		key := file + "|" + marker
		if seen[key] {
			return fmt.Errorf("duplicate markdown injection target: file=%q marker=%q", file, marker)
		}
		seen[key] = true
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if cfg.Observability.Enabled && strings.TrimSpace(cfg.Observability.Listen) == "" {
		return fmt.Errorf("observability.listen must not be empty when observability.enabled=true")
	}
	if cfg.Tracing.Enabled && strings.TrimSpace(cfg.Tracing.Endpoint) == "" {
		return fmt.Errorf("tracing.endpoint must not be empty when tracing.enabled=true")
	}
	return nil
}

func validateLimits(cfg *Config) error {
	if cfg.Limits.FilesPerSecond < 0 {
		return fmt.Errorf("limits.files_per_second must not be negative, got %v", cfg.Limits.FilesPerSecond)
	}
	if cfg.Limits.MaxHeapMB < 0 {
		return fmt.Errorf("limits.max_heap_mb must not be negative, got %d", cfg.Limits.MaxHeapMB)
	}
	return nil
}
