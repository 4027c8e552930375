// Package main provides the preprocess command: ingest and clean a raw
// reviews dataset without running sentiment or thematic analysis.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"reviewlens/internal/artifacts"
	"reviewlens/internal/cleaner"
	"reviewlens/internal/config"
	"reviewlens/internal/formatter"
	"reviewlens/internal/ingest"
	"reviewlens/internal/logger"
	"reviewlens/internal/quality"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	source := flag.String("source", "", "Raw reviews CSV: local path or http(s) URL (overrides config)")
	outputDir := flag.String("output", "", "Artifact output directory (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *source != "" {
		cfg.Ingest.Source = *source
	}

	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	log := logger.NewLogger(cfg.Logging.Level)

	if cfg.Ingest.Source == "" {
		log.Error("Please provide a reviews source with -source flag or ingest.source in config")
		flag.PrintDefaults()
		os.Exit(1)
	}

	startTime := time.Now()

	fetcher := ingest.NewFetcherWithConfig(&cfg.Ingest.Retry)

	dataset, err := ingest.Load(cfg.Ingest.Source, fetcher)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Ingestion failed: %v", err))
		os.Exit(1)
	}

	validator := cleaner.NewValidator(cfg.Validation.RequiredColumns, log)
	if err := validator.Validate(dataset); err != nil {
		log.Error(fmt.Sprintf("❌ Schema validation failed: %v", err))
		os.Exit(1)
	}

	processor := cleaner.NewProcessor(&cfg.Processing, log)
	result := processor.Process(dataset.Reviews)

	reporter := quality.NewReporter(&cfg.Requirements, log)
	report := reporter.Build(result.InitialCount, result.Metrics, result.Reviews, nil)

	writer := artifacts.NewWriter(cfg.Output.Dir, log)

	if err := writer.WriteProcessed(result.Reviews); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to write processed reviews: %v", err))
		os.Exit(1)
	}

	if err := writer.WriteQualityReport(report); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to write quality report: %v", err))
		os.Exit(1)
	}

	if err := writer.WriteMarkdownReport(formatter.Render(report, nil, nil, nil)); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to write markdown report: %v", err))
		os.Exit(1)
	}

	log.Info("✨ Preprocessing complete",
		"initial", result.InitialCount,
		"final", result.FinalCount(),
		"duration", time.Since(startTime).String())

	if !report.RequirementsMet {
		os.Exit(2)
	}
}
