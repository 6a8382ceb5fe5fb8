package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into ordered, non-empty tokens.
type Tokenizer func(text string) []string

func NewTokenizer() Tokenizer {
	return func(text string) []string {
		if len(text) == 0 {
			return []string{}
		}

		fields := strings.FieldsFunc(text, unicode.IsSpace)
		tokens := make([]string, 0, len(fields))
		for _, field := range fields {
			if field == "" {
				continue
			}
			tokens = append(tokens, field)
		}
		return tokens
	}
}
