package sentiment

import (
	"context"
	"strings"

	"reviewlens/internal/models"
)

// Word lists for the offline lexicon classifier. Deliberately small;
// this capability exists for local runs and tests, not accuracy.
var (
	positiveWords = map[string]bool{
		"good": true, "great": true, "excellent": true, "amazing": true,
		"love": true, "best": true, "easy": true, "fast": true,
		"nice": true, "helpful": true, "perfect": true, "smooth": true,
		"reliable": true, "convenient": true, "awesome": true,
	}

	negativeWords = map[string]bool{
		"bad": true, "terrible": true, "worst": true, "hate": true,
		"slow": true, "crash": true, "crashes": true, "crashing": true,
		"broken": true, "useless": true, "awful": true, "poor": true,
		"annoying": true, "fail": true, "fails": true, "failing": true,
		"error": true, "stuck": true, "freeze": true, "freezes": true,
	}
)

// LexiconCapability is a deterministic in-process classifier built on
// small positive/negative word lists. It stands in for the remote model
// when no endpoint is configured.
type LexiconCapability struct{}

// NewLexiconCapability creates the offline classifier.
func NewLexiconCapability() *LexiconCapability {
	return &LexiconCapability{}
}

// Classify scores text by word-list hits. Confidence moves away from 0.5
// with the hit margin: positive texts score higher, negative texts lower,
// so the default thresholds bucket them as expected.
func (c *LexiconCapability) Classify(_ context.Context, text string) (Prediction, error) {
	positives := 0
	negatives := 0

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?")

		if positiveWords[word] {
			positives++
		}

		if negativeWords[word] {
			negatives++
		}
	}

	diff := positives - negatives
	switch {
	case diff > 0:
		return Prediction{Label: models.LabelPositive, Score: clamp(0.5+0.1*float64(diff), 0.05, 0.95)}, nil
	case diff < 0:
		return Prediction{Label: models.LabelNegative, Score: clamp(0.5+0.1*float64(diff), 0.05, 0.95)}, nil
	default:
		return Prediction{Label: models.LabelNeutral, Score: 0.5}, nil
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
