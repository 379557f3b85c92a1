package cli

import "flag"

type cliOptions struct {
	configPath string
	once       bool
	ui         bool
	sarif      string
	mcp        bool
	verbose    bool
	version    bool
	args       []string
}

func parseOptions(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("undoc", flag.ContinueOnError)

	fs.StringVar(&opts.configPath, "config", "", "Path to config file (default ./undoc.toml, falling back to ./undoc.example.toml)")
	fs.BoolVar(&opts.once, "once", false, "Run single scan and exit; exit code 1 when offenses were found")
	fs.BoolVar(&opts.ui, "ui", false, "Enable terminal UI mode")
	fs.StringVar(&opts.sarif, "sarif", "", "Write SARIF output to this path (overrides output.sarif)")
	fs.BoolVar(&opts.mcp, "mcp", false, "Serve analysis over MCP stdio instead of running a scan loop")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.args = fs.Args()
	return opts, nil
}
