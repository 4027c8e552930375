// Package main provides the seed command: generate a synthetic raw
// reviews CSV for local pipeline runs and demos.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"reviewlens/internal/config"
	"reviewlens/internal/logger"
)

var positiveTexts = []string{
	"Great app, transfers are fast and easy",
	"Love the new interface, very user friendly design",
	"Excellent service, works perfectly every time",
	"Best banking app I have used, simple navigation",
	"Quick and reliable, the update fixed everything 😊",
}

var negativeTexts = []string{
	"The app keeps crashing and freezing after the update",
	"Login fails every time, password reset does not work",
	"Transfers are painfully slow, loading forever",
	"Terrible support, nobody responds to my complaints",
	"App is full of bugs and errors, not working at all",
}

var neutralTexts = []string{
	"It is a banking app, does what it says",
	"Average experience, nothing special to report",
	"Works sometimes, other times I use the branch",
}

func main() {
	output := flag.String("output", "data/raw_reviews.csv", "Output CSV path")
	perBank := flag.Int("per-bank", 500, "Reviews generated per bank")
	seed := flag.Int64("seed", 0, "Random seed (0 uses current time)")
	noise := flag.Bool("noise", true, "Inject duplicates, missing values, and invalid rows")
	flag.Parse()

	log := logger.NewLogger("info")

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(*seed))
	cfg := config.DefaultConfig()

	f, err := os.Create(*output)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to create output file: %v", err))
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"review_id", "review_text", "rating", "date", "bank", "source", "thumbs_up", "app_version"}
	if err := w.Write(header); err != nil {
		log.Error(fmt.Sprintf("Failed to write header: %v", err))
		os.Exit(1)
	}

	total := 0

	for _, bank := range cfg.Banks {
		for i := 0; i < *perBank; i++ {
			row := makeRow(rng, bank.ID)

			if err := w.Write(row); err != nil {
				log.Error(fmt.Sprintf("Failed to write row: %v", err))
				os.Exit(1)
			}

			total++

			if !*noise {
				continue
			}

			// A few duplicates and defective rows so cleaning has work to do.
			switch rng.Intn(50) {
			case 0:
				_ = w.Write(row)
				total++
			case 1:
				defective := makeRow(rng, bank.ID)
				defective[1] = ""
				_ = w.Write(defective)
				total++
			case 2:
				defective := makeRow(rng, bank.ID)
				defective[2] = "4.5"
				_ = w.Write(defective)
				total++
			case 3:
				defective := makeRow(rng, bank.ID)
				defective[3] = "not-a-date"
				_ = w.Write(defective)
				total++
			}
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		log.Error(fmt.Sprintf("Failed to flush output: %v", err))
		os.Exit(1)
	}

	log.Info("Synthetic dataset written", "path", *output, "rows", total, "seed", *seed)
}

func makeRow(rng *rand.Rand, bankID string) []string {
	var text string

	rating := rng.Intn(5) + 1

	switch {
	case rating >= 4:
		text = positiveTexts[rng.Intn(len(positiveTexts))]
	case rating <= 2:
		text = negativeTexts[rng.Intn(len(negativeTexts))]
	default:
		text = neutralTexts[rng.Intn(len(neutralTexts))]
	}

	date := time.Date(2024, time.Month(rng.Intn(12)+1), rng.Intn(28)+1, 0, 0, 0, 0, time.UTC)

	version := ""
	if rng.Intn(4) != 0 {
		version = fmt.Sprintf("%d.%d.%d", rng.Intn(3)+3, rng.Intn(10), rng.Intn(10))
	}

	return []string{
		uuid.NewString(),
		text,
		strconv.Itoa(rating),
		date.Format("2006-01-02"),
		bankID,
		"Google Play",
		strconv.Itoa(rng.Intn(40)),
		version,
	}
}
