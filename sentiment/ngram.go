package sentiment

import (
	"duygu.io/sentiment/tokenizer"
	"sort"
	"strings"
)

const (
	minNGram = 2
	maxNGram = 3
)

// ExtractNGrams returns the distinct, sorted bigrams and trigrams of tokens.
// N-grams are lowercased, so a tagged token shows up as not_<word> inside them.
func ExtractNGrams(tokens []string) []string {
	if len(tokens) < minNGram {
		return []string{}
	}

	seen := make(map[string]bool)
	for n := minNGram; n <= maxNGram; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			seen[tokenizer.Lower(strings.Join(tokens[i:i+n], " "))] = true
		}
	}

	ngrams := make([]string, 0, len(seen))
	for ngram := range seen {
		ngrams = append(ngrams, ngram)
	}
	sort.Strings(ngrams)
	return ngrams
}
