package themes

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"

	"reviewlens/internal/models"
)

// tokenize splits lowercased text into word tokens with stopwords and
// bare punctuation removed.
func tokenize(text string) []string {
	var tokens []string

	iter := words.FromString(strings.ToLower(text))
	for iter.Next() {
		token := iter.Value()
		if !tokenHasAlnum(token) || isStopword(token) {
			continue
		}

		tokens = append(tokens, token)
	}

	return tokens
}

func tokenHasAlnum(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

// terms produces unigrams and bigrams over the filtered token sequence.
func terms(tokens []string) []string {
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)

	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}

	return out
}

// ExtractKeywords ranks terms across the given texts by summed TF-IDF
// score. The vocabulary is capped at maxFeatures terms (most frequent
// first) before scoring; the topN highest-scoring terms are returned.
// Diagnostic only: theme assignment does not consult these scores.
func ExtractKeywords(texts []string, maxFeatures, topN int) []models.Keyword {
	if len(texts) == 0 || maxFeatures < 1 || topN < 1 {
		return nil
	}

	docs := make([][]string, 0, len(texts))
	totalCount := make(map[string]int)
	docFreq := make(map[string]int)

	for _, text := range texts {
		ts := terms(tokenize(text))
		docs = append(docs, ts)

		seen := make(map[string]bool, len(ts))
		for _, term := range ts {
			totalCount[term]++

			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	// Cap the vocabulary at the most frequent terms, ties alphabetical.
	vocab := make([]string, 0, len(totalCount))
	for term := range totalCount {
		vocab = append(vocab, term)
	}

	sort.Slice(vocab, func(i, j int) bool {
		if totalCount[vocab[i]] != totalCount[vocab[j]] {
			return totalCount[vocab[i]] > totalCount[vocab[j]]
		}

		return vocab[i] < vocab[j]
	})

	if len(vocab) > maxFeatures {
		vocab = vocab[:maxFeatures]
	}

	inVocab := make(map[string]bool, len(vocab))
	for _, term := range vocab {
		inVocab[term] = true
	}

	// Smoothed IDF, one value per vocabulary term.
	n := float64(len(docs))
	idf := make(map[string]float64, len(vocab))

	for _, term := range vocab {
		idf[term] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	// Sum L2-normalized per-document TF-IDF vectors over the corpus.
	scores := make(map[string]float64, len(vocab))

	for _, doc := range docs {
		tf := make(map[string]int, len(doc))
		for _, term := range doc {
			if inVocab[term] {
				tf[term]++
			}
		}

		var norm float64
		for term, count := range tf {
			w := float64(count) * idf[term]
			norm += w * w
		}

		if norm == 0 {
			continue
		}

		norm = math.Sqrt(norm)
		for term, count := range tf {
			scores[term] += float64(count) * idf[term] / norm
		}
	}

	ranked := make([]models.Keyword, 0, len(scores))
	for term, score := range scores {
		ranked = append(ranked, models.Keyword{Term: term, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}

		return ranked[i].Term < ranked[j].Term
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked
}
