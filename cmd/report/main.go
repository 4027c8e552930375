// Package main provides the report command: re-render the markdown
// quality report from a stored quality_report.json, or verify the
// provenance stamp of an existing markdown report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"reviewlens/internal/formatter"
	"reviewlens/internal/logger"
	"reviewlens/internal/models"
	"reviewlens/pkg/metadata"
)

func main() {
	input := flag.String("input", "", "Path to quality_report.json")
	output := flag.String("output", "", "Markdown output path (default: stdout)")
	verify := flag.String("verify", "", "Verify the provenance stamp of a markdown report and exit")
	flag.Parse()

	log := logger.NewLogger("info")

	if *verify != "" {
		verifyReport(log, *verify)
		return
	}

	if *input == "" {
		log.Error("Please provide a quality report with -input, or a file to check with -verify")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to read report: %v", err))
		os.Exit(1)
	}

	var report models.QualityReport
	if err := json.Unmarshal(data, &report); err != nil {
		log.Error(fmt.Sprintf("Failed to parse report: %v", err))
		os.Exit(1)
	}

	rendered := formatter.Render(report, nil, nil, nil)

	if *output == "" {
		fmt.Println(rendered)
		return
	}

	if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
		log.Error(fmt.Sprintf("Failed to write markdown report: %v", err))
		os.Exit(1)
	}

	log.Info("Markdown report written", "path", *output)
}

func verifyReport(log *logger.Logger, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to read file: %v", err))
		os.Exit(1)
	}

	ok, err := metadata.Verify(string(data))
	if err != nil {
		log.Error(fmt.Sprintf("Verification failed: %v", err))
		os.Exit(1)
	}

	if !ok {
		log.Error("Report content does not match its provenance stamp")
		os.Exit(1)
	}

	stamp, _ := metadata.Extract(string(data))
	log.Info("Report verified",
		"generated_at", stamp.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		"requirements_met", stamp.RequirementsMet)
}
