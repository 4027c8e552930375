package sentiment

import (
	"context"
	"strings"
	"sync"

	"reviewlens/internal/config"
	"reviewlens/internal/logger"
	"reviewlens/internal/models"
)

// Fallback prediction used when the capability fails or input is blank.
// Sentiment absence must never halt the pipeline: every row gets a result.
const (
	FallbackLabel = models.LabelNeutral
	FallbackScore = 0.5
)

// Analyzer buckets raw classifier predictions into sentiment categories.
type Analyzer struct {
	capability Capability
	cfg        *config.SentimentConfig
	log        *logger.Logger
}

// NewAnalyzer creates an analyzer over the given capability.
func NewAnalyzer(capability Capability, cfg *config.SentimentConfig, log *logger.Logger) *Analyzer {
	return &Analyzer{capability: capability, cfg: cfg, log: log}
}

// Categorize applies the threshold rule to a raw prediction. A POSITIVE
// label below the positive threshold and a NEGATIVE label above the
// negative threshold both resolve to neutral; the middle band is
// intentionally conservative.
func (a *Analyzer) Categorize(label string, score float64) models.Category {
	switch {
	case label == models.LabelPositive && score >= a.cfg.PositiveThreshold:
		return models.CategoryPositive
	case label == models.LabelNegative && score <= a.cfg.NegativeThreshold:
		return models.CategoryNegative
	default:
		return models.CategoryNeutral
	}
}

// ClassifyText classifies a single text, converting any capability
// failure, blank input, or malformed prediction into the fallback.
func (a *Analyzer) ClassifyText(ctx context.Context, text string) models.SentimentResult {
	pred := Prediction{Label: FallbackLabel, Score: FallbackScore}

	if strings.TrimSpace(text) != "" {
		got, err := a.capability.Classify(ctx, text)

		switch {
		case err != nil:
			if a.log != nil {
				a.log.Debug("Classifier failed, using fallback", "error", err)
			}
		case !validPrediction(got):
			if a.log != nil {
				a.log.Debug("Malformed prediction, using fallback", "label", got.Label, "score", got.Score)
			}
		default:
			pred = got
		}
	}

	return models.SentimentResult{
		Label:      pred.Label,
		Confidence: pred.Score,
		Category:   a.Categorize(pred.Label, pred.Score),
	}
}

// AnalyzeAll classifies every review, fanning out across a bounded worker
// pool. Rows have no data dependency on each other; results are gathered
// back in input order.
func (a *Analyzer) AnalyzeAll(ctx context.Context, reviews []models.CleanedReview) []models.ScoredReview {
	if a.log != nil {
		a.log.Info("Starting sentiment analysis", "reviews", len(reviews), "workers", a.cfg.Workers)
	}

	scored := make([]models.ScoredReview, len(reviews))

	jobs := make(chan int)

	var wg sync.WaitGroup

	workers := a.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				scored[i] = models.ScoredReview{
					CleanedReview: reviews[i],
					Sentiment:     a.ClassifyText(ctx, reviews[i].CleanedText),
				}
			}
		}()
	}

	for i := range reviews {
		jobs <- i
	}

	close(jobs)
	wg.Wait()

	if a.log != nil {
		dist := Distribution(scored)
		a.log.Info("Sentiment analysis completed",
			"positive", dist[models.CategoryPositive],
			"negative", dist[models.CategoryNegative],
			"neutral", dist[models.CategoryNeutral])
	}

	return scored
}

// Distribution counts scored reviews per sentiment category.
func Distribution(scored []models.ScoredReview) map[models.Category]int {
	dist := make(map[models.Category]int, 3)
	for _, s := range scored {
		dist[s.Sentiment.Category]++
	}

	return dist
}

func validPrediction(p Prediction) bool {
	if p.Score < 0 || p.Score > 1 {
		return false
	}

	switch p.Label {
	case models.LabelPositive, models.LabelNegative, models.LabelNeutral:
		return true
	default:
		return false
	}
}
