package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	coreapp "undoc/internal/core/app"
	"undoc/internal/core/config"
	"undoc/internal/core/ports"
	mcpruntime "undoc/internal/mcp/runtime"
	"undoc/internal/shared/observability"
	"undoc/internal/shared/version"
)

func Run(args []string) int {
	opts, err := parseOptions(args)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Printf("undoc v%s\n", version.Version)
		return 0
	}

	cleanupLogs := configureLogging(opts.ui, opts.verbose)
	defer cleanupLogs()

	cfg, cfgPath, err := loadConfig(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 2
	}

	if err := applyModeOptions(&opts, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}

	if opts.mcp || cfg.MCP.Enabled {
		if err := runMCPMode(cfg, cfgPath); err != nil {
			slog.Error("failed to run MCP mode", "error", err)
			return 2
		}
		return 0
	}

	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracing(context.Background(), cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
		if err != nil {
			slog.Warn("tracing unavailable, continuing without it", "error", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					slog.Warn("tracing shutdown failed", "error", err)
				}
			}()
		}
	}

	app, err := coreapp.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 2
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			slog.Warn("shutdown incomplete", "error", err)
		}
	}()

	if cfg.Observability.Enabled {
		obs := NewObservabilityServer(cfg.Observability.Listen, coreapp.NewHealthService(app))
		if err := obs.Start(context.Background()); err != nil {
			slog.Error("failed to start observability server", "error", err)
			return 2
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := obs.Stop(ctx); err != nil {
				slog.Warn("observability server shutdown failed", "error", err)
			}
		}()
	}

	analysis := app.AnalysisService()

	scanStart := time.Now()
	result, err := analysis.RunScan(context.Background(), ports.ScanRequest{})
	if err != nil {
		slog.Error("initial scan failed", "error", err)
		return 2
	}
	scanDuration := time.Since(scanStart)

	summary, err := analysis.SummarySnapshot(context.Background())
	if err != nil {
		slog.Error("failed to collect summary snapshot", "error", err)
		return 2
	}

	if _, err := analysis.SyncOutputs(context.Background()); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}

	if !opts.ui {
		if err := analysis.PrintSummary(context.Background(), ports.SummaryPrintRequest{
			Duration: scanDuration,
			Snapshot: summary,
		}); err != nil {
			slog.Error("failed to print summary", "error", err)
			return 2
		}
	}

	if opts.once {
		if result.Offenses > 0 {
			return 1
		}
		return 0
	}

	if err := app.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		return 2
	}

	if opts.ui {
		if err := runUI(app); err != nil {
			slog.Error("failed to run UI", "error", err)
			return 2
		}
		return 0
	}

	select {}
}

func loadConfig(explicit string) (*config.Config, string, error) {
	if explicit != "" {
		cfg, err := config.Load(explicit)
		if err != nil {
			return nil, "", err
		}
		return cfg, explicit, nil
	}

	path := config.Resolve("")
	cfg, err := config.Load(path)
	if os.IsNotExist(err) {
		// No config file at all: scan the working directory with stock
		// settings.
		return config.Default(), "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func applyModeOptions(opts *cliOptions, cfg *config.Config) error {
	if opts.mcp || cfg.MCP.Enabled {
		if opts.ui || opts.once || len(opts.args) > 0 {
			return fmt.Errorf("MCP mode cannot be combined with -ui, -once, or positional path arguments")
		}
	}

	if len(opts.args) > 0 {
		cfg.ScanPaths = append([]string(nil), opts.args...)
	}
	if opts.sarif != "" {
		cfg.Output.SARIF = opts.sarif
	}
	return nil
}

func runMCPMode(cfg *config.Config, configPath string) error {
	return runMCPModeWithFactory(cfg, configPath, coreAnalysisFactory{})
}

func runMCPModeWithFactory(cfg *config.Config, configPath string, factory analysisFactory) error {
	// MCP stdio requires stdout to be protocol-only JSON.
	// Route logs to stderr before any startup work can emit logs.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	analysis, err := initializeAnalysis(cfg, factory)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	if _, err := analysis.RunScan(context.Background(), ports.ScanRequest{}); err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}

	server, err := mcpruntime.Build(cfg, mcpruntime.Dependencies{
		Analysis:   analysis,
		Logger:     slog.Default(),
		ConfigPath: configPath,
	})
	if err != nil {
		return fmt.Errorf("build MCP runtime: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func configureLogging(uiMode, verbose bool) func() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	var closeFn func() = func() {}
	if uiMode {
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
				if err == nil {
					output = f
					closeFn = func() { _ = f.Close() }
				} else {
					fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return closeFn
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "undoc", "undoc.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "undoc", "undoc.log")
	}

	return "undoc.log"
}
