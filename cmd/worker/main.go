// Package main provides the unified worker command that runs the full
// review pipeline: ingest, clean, sentiment, themes, and reporting.
package main

import (
	"context"
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
	"reviewlens/internal/models"
	"reviewlens/internal/quality"
	"reviewlens/internal/sentiment"
	"reviewlens/internal/storage"
	"reviewlens/internal/themes"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	source := flag.String("source", "", "Raw reviews CSV: local path or http(s) URL (overrides config)")
	outputDir := flag.String("output", "", "Artifact output directory (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (optional, overrides config)")
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

	if *dbPath != "" {
		cfg.Output.DatabasePath = *dbPath
	}

	log := logger.NewLogger(cfg.Logging.Level)

	if cfg.Ingest.Source == "" {
		log.Error("Please provide a reviews source with -source flag or ingest.source in config")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Info("🚀 Starting review pipeline")
	log.Info(fmt.Sprintf("📍 Source: %s", cfg.Ingest.Source))
	log.Info(fmt.Sprintf("🎯 Output: %s", cfg.Output.Dir))

	ctx := context.Background()
	startTime := time.Now()

	// 1. Ingestion
	// ------------
	log.Info("Phase 1: Ingestion...")

	fetcher := ingest.NewFetcherWithConfig(&cfg.Ingest.Retry)

	dataset, err := ingest.Load(cfg.Ingest.Source, fetcher)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Ingestion failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Loaded %d raw reviews in %v", len(dataset.Reviews), time.Since(startTime)))

	// 2. Validation and cleaning
	// --------------------------
	log.Info("Phase 2: Validation and cleaning...")

	validator := cleaner.NewValidator(cfg.Validation.RequiredColumns, log)
	if err := validator.Validate(dataset); err != nil {
		log.Error(fmt.Sprintf("❌ Schema validation failed: %v", err))
		os.Exit(1)
	}

	processor := cleaner.NewProcessor(&cfg.Processing, log)
	result := processor.Process(dataset.Reviews)

	log.Info(fmt.Sprintf("✅ %d of %d reviews survived cleaning", result.FinalCount(), result.InitialCount))

	// 3. Sentiment analysis
	// ---------------------
	log.Info("Phase 3: Sentiment analysis...")

	var capability sentiment.Capability
	if cfg.Sentiment.Endpoint != "" {
		capability = sentiment.NewHTTPCapability(cfg.Sentiment.Endpoint, cfg.Sentiment.Model, log)
	} else {
		log.Warn("No sentiment endpoint configured, using offline lexicon classifier")

		capability = sentiment.NewLexiconCapability()
	}

	analyzer := sentiment.NewAnalyzer(capability, &cfg.Sentiment, log)
	scored := analyzer.AnalyzeAll(ctx, result.Reviews)

	// 4. Thematic analysis
	// --------------------
	log.Info("Phase 4: Thematic analysis...")

	tagger := themes.NewTagger(&cfg.Themes, log)
	assignments, keywords := tagger.TagAll(scored)

	byBank := themes.SummarizeByBank(assignments)
	bySentiment := themes.SummarizeBySentiment(assignments)

	// 5. Quality report and artifacts
	// -------------------------------
	log.Info("Phase 5: Reporting...")

	reporter := quality.NewReporter(&cfg.Requirements, log)
	report := reporter.Build(result.InitialCount, result.Metrics, result.Reviews, sentiment.Distribution(scored))

	writer := artifacts.NewWriter(cfg.Output.Dir, log)

	writeSteps := []struct {
		name string
		fn   func() error
	}{
		{"processed reviews", func() error { return writer.WriteProcessed(result.Reviews) }},
		{"scored reviews", func() error { return writer.WriteScored(scored) }},
		{"theme assignments", func() error { return writer.WriteThemeAssignments(assignments) }},
		{"theme summaries", func() error { return writer.WriteThemeSummaries(byBank, bySentiment) }},
		{"quality report", func() error { return writer.WriteQualityReport(report) }},
		{"markdown report", func() error { return writer.WriteMarkdownReport(formatter.Render(report, byBank, bySentiment, keywords)) }},
	}

	for _, step := range writeSteps {
		if err := step.fn(); err != nil {
			log.Error(fmt.Sprintf("❌ Failed to write %s: %v", step.name, err))
			os.Exit(1)
		}
	}

	// 6. Optional database sink
	// -------------------------
	if cfg.Output.DatabasePath != "" {
		log.Info("Phase 6: Persisting to database...", "path", cfg.Output.DatabasePath)

		if err := persist(cfg, scored, assignments); err != nil {
			log.Error(fmt.Sprintf("❌ Database persistence failed: %v", err))
			os.Exit(1)
		}
	}

	// 7. Final summary
	// ----------------
	log.Info("✨ Pipeline complete!")
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Summary Report\n")
	fmt.Println("------------------------------------------------")
	fmt.Printf("Initial Reviews:   %d\n", report.InitialReviews)
	fmt.Printf("Final Reviews:     %d\n", report.FinalReviews)
	fmt.Printf("Removal Rate:      %.1f%%\n", report.RemovalRate*100)
	fmt.Printf("Theme Assignments: %d\n", len(assignments))
	fmt.Printf("Requirements Met:  %v\n", report.RequirementsMet)
	fmt.Printf("Total Duration:    %v\n", time.Since(startTime))
	fmt.Println("------------------------------------------------")

	if !report.RequirementsMet {
		os.Exit(2)
	}
}

func persist(cfg *config.Config, scored []models.ScoredReview, assignments []models.ThemeAssignment) error {
	store, err := storage.Open(cfg.Output.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveBanks(cfg.Banks); err != nil {
		return err
	}

	if err := store.SaveReviews(scored); err != nil {
		return err
	}

	return store.SaveThemeAssignments(assignments)
}
