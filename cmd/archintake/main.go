package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/debuggies/archintake/internal/config"
	"github.com/debuggies/archintake/internal/logger"
	"github.com/debuggies/archintake/internal/telemetry"
	"github.com/debuggies/archintake/internal/tui/theme"
	"github.com/debuggies/archintake/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	logoText1 = "▄▀█ █▀█ █▀▀ █ █ █ █▄ █ ▀█▀ ▄▀█ █▄▀ █▀▀"
	logoText2 = "█▀█ █▀▄ █▄▄ █▀█ █ █ ▀█  █  █▀█ █ █ ██▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "archintake",
	Short: "Describe your infrastructure, get an architecture back",
	RunE:  runWizard,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

// flagKeys maps persistent flags to config keys.
var flagKeys = map[string]string{
	"endpoint":    "endpoint_url",
	"project-url": "project_url",
	"timeout":     "timeout",
	"export-dir":  "export_dir",
	"log-level":   "log_level",
	"log-file":    "log_file",
	"trace":       "trace",
}

func init() {
	rootCmd.Long = renderLogo() + `

archintake walks you through a short intake: how your application runs
today, your industry, the cloud provider and the target environment. The
answers are sent to an architecture workflow, which returns functional and
infrastructure diagrams, a rationale, Terraform and a decision record.

Run without a subcommand to start the interactive wizard.

Configuration is loaded from multiple sources with the following precedence:
  CLI flags > Environment variables > Project config > Global config > Defaults

Project config: ./archintake.yml
Global config: ~/.config/archintake/archintake.yml`

	pf := rootCmd.PersistentFlags()
	pf.String("endpoint", "", "Workflow endpoint URL")
	pf.String("project-url", "", "Project creation endpoint URL (optional)")
	pf.Duration("timeout", 0, "Request timeout (default 60s)")
	pf.String("export-dir", "", "Directory to export confirmed artifacts to")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Write logs to this file")
	pf.Bool("trace", false, "Write OpenTelemetry spans to the log")

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadConfig resolves configuration for cmd, with its flags on top, and
// applies the logging settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding --%s: %w", flag, err)
			}
		}
	}

	cfg, err := config.LoadWith(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	return cfg, nil
}

// newClient builds the workflow client and, with --trace, the span exporter.
// The returned function flushes spans and must be called before exit.
func newClient(cfg *config.Config) (*workflow.Client, func(), error) {
	shutdown := func() {}
	if cfg.Trace {
		stop, err := telemetry.Setup(logger.Writer(), version)
		if err != nil {
			return nil, nil, err
		}
		shutdown = func() {
			if err := stop(context.Background()); err != nil {
				logger.Warn("Failed to flush traces: %v", err)
			}
		}
	}

	client := workflow.NewClient(workflow.Options{
		EndpointURL: cfg.EndpointURL,
		ProjectURL:  cfg.ProjectURL,
		Timeout:     cfg.Timeout,
	})
	return client, shutdown, nil
}
