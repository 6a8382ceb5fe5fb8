package lexicon

import (
	"duygu.io/sentiment/logger"
	"duygu.io/sentiment/negation"
	"duygu.io/sentiment/types"
	"duygu.io/sentiment/utils"
	"fmt"
	"io"
)

// Opener opens a lexicon resource by path.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// Lexicon holds the word and phrase sets. It is never modified after Load or New.
type Lexicon struct {
	stopwords       map[string]bool
	positiveWords   map[string]bool
	negativeWords   map[string]bool
	positivePhrases map[string]bool
	negativePhrases map[string]bool
	negationMarkers map[string]bool
}

type Sets struct {
	Stopwords       []string
	PositiveWords   []string
	NegativeWords   []string
	PositivePhrases []string
	NegativePhrases []string
	NegationMarkers []string
}

// New builds a lexicon from in-memory lists. Empty NegationMarkers selects the default marker set.
func New(sets Sets) *Lexicon {
	lex := &Lexicon{
		stopwords:       utils.SetFromList(sets.Stopwords),
		positiveWords:   utils.SetFromList(sets.PositiveWords),
		negativeWords:   utils.SetFromList(sets.NegativeWords),
		positivePhrases: utils.SetFromList(sets.PositivePhrases),
		negativePhrases: utils.SetFromList(sets.NegativePhrases),
		negationMarkers: utils.SetFromList(sets.NegationMarkers),
	}
	if len(lex.negationMarkers) == 0 {
		lex.negationMarkers = negation.GetDefaultMarkers()
	}
	return lex
}

// Load reads the five lexicon files named in cfg. Any missing or unreadable file fails the whole load.
func Load(opener Opener, cfg types.LexiconConfig, negationMarkers []string) (*Lexicon, error) {
	fdlLogger := logger.NewLogger("Lexicon loader")
	errLogger := fdlLogger.With().Caller().Logger()

	lex := New(Sets{NegationMarkers: negationMarkers})
	targets := []struct {
		name string
		path string
		set  *map[string]bool
	}{
		{"stopwords", cfg.Stopwords, &lex.stopwords},
		{"positive_words", cfg.PositiveWords, &lex.positiveWords},
		{"negative_words", cfg.NegativeWords, &lex.negativeWords},
		{"positive_phrases", cfg.PositivePhrases, &lex.positivePhrases},
		{"negative_phrases", cfg.NegativePhrases, &lex.negativePhrases},
	}

	for _, target := range targets {
		set, err := readSet(opener, target.path)
		if err != nil {
			errLogger.Err(err).
				Str("lexicon", target.name).
				Str("path", target.path).
				Msg("Failed to load lexicon")
			return nil, fmt.Errorf("load %s lexicon: %w", target.name, err)
		}
		*target.set = set
		fdlLogger.Info().
			Str("lexicon", target.name).
			Str("path", target.path).
			Int("entries", len(set)).
			Msg("Loaded lexicon")
	}

	return lex, nil
}

func readSet(opener Opener, path string) (map[string]bool, error) {
	rc, err := opener.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return utils.ReadSet(rc)
}

func (lex *Lexicon) IsStopword(s string) bool {
	return lex.stopwords[s]
}

func (lex *Lexicon) IsPositiveWord(s string) bool {
	return lex.positiveWords[s]
}

func (lex *Lexicon) IsNegativeWord(s string) bool {
	return lex.negativeWords[s]
}

func (lex *Lexicon) IsPositivePhrase(s string) bool {
	return lex.positivePhrases[s]
}

func (lex *Lexicon) IsNegativePhrase(s string) bool {
	return lex.negativePhrases[s]
}

func (lex *Lexicon) NegationMarkers() map[string]bool {
	markers := make(map[string]bool, len(lex.negationMarkers))
	for k, v := range lex.negationMarkers {
		markers[k] = v
	}
	return markers
}

// Words returns every positive and negative word. The suffix engine uses them as known roots.
func (lex *Lexicon) Words() []string {
	words := make([]string, 0, len(lex.positiveWords)+len(lex.negativeWords))
	for w := range lex.positiveWords {
		words = append(words, w)
	}
	for w := range lex.negativeWords {
		words = append(words, w)
	}
	return words
}

type Stats struct {
	Stopwords       int `json:"stopwords"`
	PositiveWords   int `json:"positive_words"`
	NegativeWords   int `json:"negative_words"`
	PositivePhrases int `json:"positive_phrases"`
	NegativePhrases int `json:"negative_phrases"`
	NegationMarkers int `json:"negation_markers"`
}

func (lex *Lexicon) Stats() Stats {
	return Stats{
		Stopwords:       len(lex.stopwords),
		PositiveWords:   len(lex.positiveWords),
		NegativeWords:   len(lex.negativeWords),
		PositivePhrases: len(lex.positivePhrases),
		NegativePhrases: len(lex.negativePhrases),
		NegationMarkers: len(lex.negationMarkers),
	}
}

// Ambiguous lists words and phrases present in both polarities. They are allowed but cancel out.
func (lex *Lexicon) Ambiguous() []string {
	var result []string
	for w := range lex.positiveWords {
		if lex.negativeWords[w] {
			result = append(result, w)
		}
	}
	for p := range lex.positivePhrases {
		if lex.negativePhrases[p] {
			result = append(result, p)
		}
	}
	return result
}
