// Package themes assigns topical themes to reviews via keyword matching
// and extracts per-bank TF-IDF keywords for diagnostics.
package themes

import (
	"sort"
	"strings"
	"sync"

	"reviewlens/internal/config"
	"reviewlens/internal/logger"
	"reviewlens/internal/models"
	"reviewlens/pkg/textutil"
)

// excerptLength caps the review text carried on assignment rows.
const excerptLength = 100

// Match is one theme hit for a review, with the trigger keywords that
// fired.
type Match struct {
	Theme    string
	Keywords []string
}

// Tagger performs thematic analysis over scored reviews.
type Tagger struct {
	cfg *config.ThemesConfig
	log *logger.Logger

	// themeNames is the keyword table's key set in sorted order, so
	// assignment rows come out deterministically.
	themeNames []string
}

// NewTagger creates a tagger over the configured theme keyword table.
func NewTagger(cfg *config.ThemesConfig, log *logger.Logger) *Tagger {
	names := make([]string, 0, len(cfg.Keywords))
	for name := range cfg.Keywords {
		names = append(names, name)
	}

	sort.Strings(names)

	return &Tagger{cfg: cfg, log: log, themeNames: names}
}

// AssignThemes returns every theme whose trigger keywords appear in the
// text. Matching is case-insensitive substring containment; a single
// keyword hit assigns the theme. A review may match any number of
// themes, or none.
func (t *Tagger) AssignThemes(text string) []Match {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := strings.ToLower(text)

	var matches []Match

	for _, theme := range t.themeNames {
		var hits []string

		for _, keyword := range t.cfg.Keywords[theme] {
			if strings.Contains(lower, keyword) {
				hits = append(hits, keyword)
			}
		}

		if len(hits) >= 1 {
			matches = append(matches, Match{Theme: theme, Keywords: hits})
		}
	}

	return matches
}

// groupResult holds one bank group's output.
type groupResult struct {
	assignments []models.ThemeAssignment
	keywords    models.BankKeywords
	skipped     bool
}

// TagAll partitions reviews by bank and analyzes each group. Groups
// smaller than the configured minimum are skipped entirely: too few
// samples make thematic signal unreliable. Groups are independent and
// processed concurrently; output preserves the order banks first appear
// in the input.
func (t *Tagger) TagAll(scored []models.ScoredReview) ([]models.ThemeAssignment, []models.BankKeywords) {
	groups := make(map[string][]models.ScoredReview)

	var bankOrder []string

	for _, s := range scored {
		if _, ok := groups[s.Bank]; !ok {
			bankOrder = append(bankOrder, s.Bank)
		}

		groups[s.Bank] = append(groups[s.Bank], s)
	}

	results := make(map[string]*groupResult, len(bankOrder))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, bank := range bankOrder {
		wg.Add(1)

		go func(bank string, reviews []models.ScoredReview) {
			defer wg.Done()

			res := t.tagGroup(bank, reviews)

			mu.Lock()
			results[bank] = res
			mu.Unlock()
		}(bank, groups[bank])
	}

	wg.Wait()

	var (
		assignments []models.ThemeAssignment
		keywords    []models.BankKeywords
	)

	for _, bank := range bankOrder {
		res := results[bank]
		if res.skipped {
			continue
		}

		assignments = append(assignments, res.assignments...)
		keywords = append(keywords, res.keywords)
	}

	if t.log != nil {
		t.log.Info("Thematic analysis completed", "assignments", len(assignments), "banks", len(keywords))
	}

	return assignments, keywords
}

// tagGroup analyzes one bank's review group: TF-IDF keyword extraction
// for the log, then keyword-membership theme assignment per review.
func (t *Tagger) tagGroup(bank string, reviews []models.ScoredReview) *groupResult {
	if len(reviews) < t.cfg.MinGroupSize {
		if t.log != nil {
			t.log.Warn("Skipping bank with too few reviews", "bank", bank, "count", len(reviews), "min", t.cfg.MinGroupSize)
		}

		return &groupResult{skipped: true}
	}

	texts := make([]string, 0, len(reviews))

	for _, r := range reviews {
		if strings.TrimSpace(r.CleanedText) != "" {
			texts = append(texts, r.CleanedText)
		}
	}

	extracted := ExtractKeywords(texts, t.cfg.TfidfMaxFeatures, t.cfg.TopKeywords)

	if t.log != nil && len(extracted) > 0 {
		top := make([]string, 0, 5)
		for i := 0; i < len(extracted) && i < 5; i++ {
			top = append(top, extracted[i].Term)
		}

		t.log.Info("Top keywords for bank", "bank", bank, "keywords", top)
	}

	res := &groupResult{
		keywords: models.BankKeywords{Bank: bank, Keywords: extracted},
	}

	for _, r := range reviews {
		for _, match := range t.AssignThemes(r.CleanedText) {
			res.assignments = append(res.assignments, models.ThemeAssignment{
				ReviewID:        r.ReviewID,
				Bank:            bank,
				Rating:          r.Rating,
				Sentiment:       r.Sentiment.Category,
				Theme:           match.Theme,
				MatchedKeywords: match.Keywords,
				Excerpt:         textutil.Truncate(r.CleanedText, excerptLength),
			})
		}
	}

	return res
}

// SummarizeByBank counts assignments per (bank, theme), sorted by bank
// then count descending.
func SummarizeByBank(assignments []models.ThemeAssignment) []models.ThemeCount {
	type key struct {
		bank  string
		theme string
	}

	counts := make(map[key]int)
	for _, a := range assignments {
		counts[key{a.Bank, a.Theme}]++
	}

	out := make([]models.ThemeCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.ThemeCount{Bank: k.bank, Theme: k.theme, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Bank != out[j].Bank {
			return out[i].Bank < out[j].Bank
		}

		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Theme < out[j].Theme
	})

	return out
}

// SummarizeBySentiment counts assignments per (theme, sentiment
// category), sorted by theme then count descending.
func SummarizeBySentiment(assignments []models.ThemeAssignment) []models.ThemeCount {
	type key struct {
		theme     string
		sentiment models.Category
	}

	counts := make(map[key]int)
	for _, a := range assignments {
		counts[key{a.Theme, a.Sentiment}]++
	}

	out := make([]models.ThemeCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.ThemeCount{Theme: k.theme, Sentiment: k.sentiment, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Theme != out[j].Theme {
			return out[i].Theme < out[j].Theme
		}

		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Sentiment < out[j].Sentiment
	})

	return out
}
