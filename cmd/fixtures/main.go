package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/chainsafe/bridge-fixtures/internal/metrics"
	"github.com/chainsafe/bridge-fixtures/pkg/config"
	"github.com/chainsafe/bridge-fixtures/pkg/fixtures"
)

var (
	configPath = flag.String("config", "fixtures.yaml", "Path to configuration file")
	outPath    = flag.String("out", "", "Output file, overrides output.path (- for stdout)")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}

	// Initialize logger
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Fixture generation failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Generating bridge fixtures",
		zap.Int("tokens", len(cfg.Tokens)),
		zap.String("output", cfg.Output.Path),
		zap.String("format", cfg.Output.Format))

	m := metrics.New()
	if cfg.Output.MetricsPath != "" {
		defer func() {
			if err := m.WriteTextfile(cfg.Output.MetricsPath); err != nil {
				logger.Warn("Failed to write metrics", zap.Error(err))
			}
		}()
	}

	gen, err := fixtures.NewGenerator(cfg, fixtures.WithLogger(logger), fixtures.WithMetrics(m))
	if err != nil {
		return err
	}

	set, err := gen.Generate()
	if err != nil {
		return err
	}

	if err := writeOutput(cfg.Output, set); err != nil {
		return err
	}

	logger.Info("Fixtures written", zap.String("output", cfg.Output.Path))
	return nil
}

func writeOutput(cfg config.OutputConfig, set *fixtures.Set) error {
	switch cfg.Path {
	case "", "-", "stdout":
		return fixtures.Write(os.Stdout, set, cfg.Format)
	}

	f, err := os.Create(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := fixtures.Write(f, set, cfg.Format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
