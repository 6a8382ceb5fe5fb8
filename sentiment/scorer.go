package sentiment

import (
	"context"
	"duygu.io/sentiment/lemmatizer"
	"duygu.io/sentiment/lexicon"
	"duygu.io/sentiment/negation"
	"duygu.io/sentiment/tokenizer"
	"duygu.io/sentiment/types"
	"duygu.io/sentiment/utils"
	"errors"
	"fmt"
	"strings"
)

var ErrAnalysisFailure = errors.New("analysis failure")

// Scorer labels sentences from lexicon hits on morphological roots and n-grams.
type Scorer struct {
	lexicon   *lexicon.Lexicon
	engine    lemmatizer.Engine
	tokenizer tokenizer.Tokenizer
	tagger    negation.Tagger
}

func NewScorer(lex *lexicon.Lexicon, engine lemmatizer.Engine, tok tokenizer.Tokenizer) *Scorer {
	if tok == nil {
		tok = tokenizer.NewTokenizer()
	}
	return &Scorer{
		lexicon:   lex,
		engine:    engine,
		tokenizer: tok,
		tagger:    negation.NewTagger(lex.NegationMarkers()),
	}
}

// Classify normalizes raw text and scores it.
func (scorer *Scorer) Classify(ctx context.Context, raw string) types.Result {
	return scorer.Score(ctx, tokenizer.Normalize(raw))
}

// Score labels an already normalized sentence. Failures are reported in the result, never by panicking.
func (scorer *Scorer) Score(ctx context.Context, sentence string) types.Result {
	result := types.Result{Sentence: sentence}
	if err := scorer.score(ctx, &result); err != nil {
		result.Label = types.LabelError
		result.Score = 0
		result.Err = fmt.Errorf("%w: %v", ErrAnalysisFailure, err)
	}
	return result
}

func (scorer *Scorer) score(ctx context.Context, result *types.Result) (err error) {
	defer utils.RecoverWithError(&err)

	tokens := scorer.tokenizer(result.Sentence)
	tagged := scorer.tagger.Tag(tokens)
	ngrams := ExtractNGrams(tagged)

	result.Tokens = tokens
	result.Tagged = tagged
	result.NGrams = ngrams

	score := 0
	if len(tagged) > 0 {
		analyses, err := scorer.engine.Analyze(ctx, strings.Join(tagged, " "))
		if err != nil {
			return err
		}
		roots := make([]string, len(analyses))
		for i, analysis := range analyses {
			roots[i] = rootOf(analysis)
			score += scorer.wordPolarity(roots[i])
		}
		result.Roots = roots
	}

	for _, ngram := range ngrams {
		score += scorer.phrasePolarity(ngram)
	}

	// any marker flips the whole score, on top of the tagging above
	if scorer.tagger.HasNegation(tokens) {
		result.Negated = true
		score = -score
	}

	result.Score = score
	result.Label = labelOf(score)
	return nil
}

// wordPolarity checks both sets, so an entry listed in both contributes zero.
func (scorer *Scorer) wordPolarity(root string) int {
	polarity := 0
	if scorer.lexicon.IsPositiveWord(root) {
		polarity++
	}
	if scorer.lexicon.IsNegativeWord(root) {
		polarity--
	}
	return polarity
}

func (scorer *Scorer) phrasePolarity(ngram string) int {
	polarity := 0
	if scorer.lexicon.IsPositivePhrase(ngram) {
		polarity++
	}
	if scorer.lexicon.IsNegativePhrase(ngram) {
		polarity--
	}
	return polarity
}

func rootOf(analysis types.Analysis) string {
	if analysis.Root != "" {
		return tokenizer.Lower(analysis.Root)
	}
	return tokenizer.Lower(analysis.Token)
}

// labelOf collapses zero into Negative; there is no neutral label.
func labelOf(score int) types.Label {
	if score > 0 {
		return types.LabelPositive
	}
	return types.LabelNegative
}
