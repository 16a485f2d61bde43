package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dockmon/internal/config"
	"dockmon/internal/docker"
	"dockmon/internal/logging"
	"dockmon/internal/poller"
	"dockmon/internal/ui"
)

var version = "dev"

var (
	flagConfig       string
	flagPollInterval int
	flagLogLevel     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "dockmon",
		Short:   "Terminal dashboard for Docker containers and networks",
		Long:    "dockmon polls the Docker daemon, shows containers and networks in navigable tables, and lets you start, stop, kill and remove containers and follow their logs.",
		Version: version,
		RunE:    run,
	}

	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default: $XDG_CONFIG_HOME/dockmon/config.yml)")
	rootCmd.Flags().IntVar(&flagPollInterval, "poll-interval", 0, "poll interval in seconds (overrides config)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagPollInterval > 0 {
		cfg.Poll.IntervalSeconds = flagPollInterval
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}

	closer, err := logging.Init(logging.Config{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	actions := make(chan poller.Action, 64)
	events := make(chan poller.Event, 256)

	// A client that cannot even be constructed degrades the session to
	// display-only: one failure notice, no poller.
	client, err := docker.NewClient(cfg.Runtime.Host)
	if err != nil {
		log := logging.Component("main")
		log.Error().Err(err).Msg("docker client setup failed")
		events <- poller.ActionResult{
			Success: false,
			Message: fmt.Sprintf("Cannot connect to container runtime: %v", err),
		}
	} else {
		defer client.Close()
		p := poller.New(client, cfg.PollInterval(), cfg.Logs.TailLines, actions, events, logging.Component("poller"))
		go p.Run(ctx)
	}

	model := ui.New(cfg, actions, events, logging.Component("ui"))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	return nil
}
