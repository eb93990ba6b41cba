package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ivlev/promoreel/internal/config"
	"github.com/ivlev/promoreel/internal/director"
	"github.com/ivlev/promoreel/internal/engine"
	"github.com/ivlev/promoreel/internal/logging"
)

const defaultScenarioDir = "scenarios"

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "scenario",
			Aliases: []string{"s"},
			Usage:   "Scenario YAML (default: newest file in scenarios/, else the built-in showcase)",
			EnvVars: []string{"PROMOREEL_SCENARIO"},
		},
		&cli.Float64Flag{Name: "fps", Usage: "Override the scenario frame rate"},
		&cli.IntFlag{Name: "width", Usage: "Override the frame width"},
		&cli.IntFlag{Name: "height", Usage: "Override the frame height"},
		&cli.IntFlag{Name: "workers", Usage: "Worker count (0 sizes the pool from the host)"},
		&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn, error", EnvVars: []string{"PROMOREEL_LOG_LEVEL"}},
		&cli.StringFlag{Name: "log-format", Value: "console", Usage: "console or json"},
	}
}

func rangeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "from", Usage: "First frame"},
		&cli.IntFlag{Name: "to", Usage: "End frame, exclusive (0 means the end of the timeline)"},
		&cli.IntFlag{Name: "step", Value: 1, Usage: "Frame stride"},
	}
}

// configFrom collects global and command flags into a Config.
func configFrom(c *cli.Context) *config.Config {
	cfg := &config.Config{
		ScenarioPath: c.String("scenario"),
		FPS:          c.Float64("fps"),
		Width:        c.Int("width"),
		Height:       c.Int("height"),
		Workers:      c.Int("workers"),
		LogLevel:     c.String("log-level"),
		LogFormat:    c.String("log-format"),
		BuildVersion: version,
	}
	if c.IsSet("from") || c.IsSet("to") || c.IsSet("step") {
		cfg.From, cfg.To, cfg.Step = c.Int("from"), c.Int("to"), c.Int("step")
	}
	return cfg
}

func newLogger(c *cli.Context, cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: c.App.ErrWriter,
	})
}

// loadScenario reads the configured scenario, falling back to the newest file in
// scenarios/ and then to the built-in showcase.
func loadScenario(cfg *config.Config, logger *zap.Logger) (*director.Scenario, error) {
	path := cfg.ScenarioPath
	if path == "" {
		latest, err := director.FindLatestScenario(defaultScenarioDir)
		if err != nil {
			logger.Info("no scenario file, using the built-in showcase", zap.Error(err))
			return director.DefaultScenario(), nil
		}
		path = latest
	}

	scenario, err := director.ReadScenario(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	logger.Info("loaded scenario", zap.String("path", path))
	return scenario, nil
}

// openProject is the common setup of every command that works on a timeline.
func openProject(c *cli.Context, cfg *config.Config) (*engine.VideoProject, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := newLogger(c, cfg)
	if err != nil {
		return nil, err
	}
	scenario, err := loadScenario(cfg, logger)
	if err != nil {
		return nil, err
	}
	return engine.NewVideoProject(cfg, scenario, logger)
}
