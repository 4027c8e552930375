package themes

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "stopwords and punctuation removed",
			text: "The transfer is very slow!",
			want: []string{"transfer", "slow"},
		},
		{
			name: "lowercased",
			text: "LOGIN Failed",
			want: []string{"login", "failed"},
		},
		{
			name: "only stopwords",
			text: "it is what it is",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenize(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTerms_IncludesBigrams(t *testing.T) {
	got := terms([]string{"transfer", "slow", "today"})

	want := []string{"transfer", "slow", "today", "transfer slow", "slow today"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("terms = %v, want %v", got, want)
	}
}

func TestExtractKeywords_RanksFrequentTerms(t *testing.T) {
	texts := []string{
		"transfer failed again",
		"transfer took forever",
		"transfer timed out today",
		"nice interface",
	}

	keywords := ExtractKeywords(texts, 100, 5)
	if len(keywords) == 0 {
		t.Fatal("Expected keywords, got none")
	}

	if keywords[0].Term != "transfer" {
		t.Errorf("Top keyword = %q, want %q", keywords[0].Term, "transfer")
	}

	for _, kw := range keywords {
		if kw.Score <= 0 {
			t.Errorf("Keyword %q has non-positive score %v", kw.Term, kw.Score)
		}
	}
}

func TestExtractKeywords_RespectsTopN(t *testing.T) {
	texts := []string{"alpha beta gamma delta epsilon zeta"}

	keywords := ExtractKeywords(texts, 100, 3)
	if len(keywords) != 3 {
		t.Errorf("Expected 3 keywords, got %d", len(keywords))
	}
}

func TestExtractKeywords_CapsVocabulary(t *testing.T) {
	texts := []string{
		"crash crash crash",
		"crash login",
		"interface",
	}

	// maxFeatures 1 keeps only the most frequent term.
	keywords := ExtractKeywords(texts, 1, 10)

	if len(keywords) != 1 || keywords[0].Term != "crash" {
		t.Errorf("Expected only %q to survive the cap, got %+v", "crash", keywords)
	}
}

func TestExtractKeywords_EmptyInput(t *testing.T) {
	if got := ExtractKeywords(nil, 100, 10); got != nil {
		t.Errorf("Expected nil for empty corpus, got %v", got)
	}

	if got := ExtractKeywords([]string{"text"}, 0, 10); got != nil {
		t.Errorf("Expected nil for zero maxFeatures, got %v", got)
	}
}
