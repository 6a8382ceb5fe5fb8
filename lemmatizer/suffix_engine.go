package lemmatizer

import (
	"context"
	"duygu.io/sentiment/tokenizer"
	"duygu.io/sentiment/types"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SuffixEngine finds roots by stripping suffixes until a known root remains.
// It has no state besides its rules and is safe for concurrent use.
type SuffixEngine struct {
	rules *SuffixRules
}

func NewSuffixEngine(rules *SuffixRules) *SuffixEngine {
	return &SuffixEngine{rules: rules}
}

func (engine *SuffixEngine) Analyze(ctx context.Context, sentence string) ([]types.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := strings.Fields(sentence)
	analyses := make([]types.Analysis, len(tokens))
	for i, token := range tokens {
		analyses[i] = types.Analysis{
			Token: token,
			Root:  engine.Root(token),
		}
	}
	return analyses, nil
}

// Root returns the root of a single word, or an empty string when the word is not made of letters
// or no known root could be reached.
func (engine *SuffixEngine) Root(word string) string {
	if !isWord(word) {
		return ""
	}
	return engine.findRoot(tokenizer.Lower(word), 0)
}

func (engine *SuffixEngine) findRoot(word string, depth int) string {
	if engine.rules.Roots[word] {
		return word
	}
	if depth == maxSuffixDepth {
		return ""
	}

	best := ""
	for _, suffix := range engine.rules.Suffixes {
		if !strings.HasSuffix(word, suffix) {
			continue
		}
		stem := strings.TrimSuffix(word, suffix)
		if utf8.RuneCountInString(stem) < minRootLength {
			continue
		}
		root := engine.findRoot(stem, depth+1)
		if utf8.RuneCountInString(root) > utf8.RuneCountInString(best) {
			best = root
		}
	}
	return best
}

func (engine *SuffixEngine) Close() error {
	return nil
}

func isWord(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) && !unicode.IsMark(r) {
			return false
		}
	}
	return true
}
