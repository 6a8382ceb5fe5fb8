package lexicon

import (
	"duygu.io/sentiment/resources"
	"duygu.io/sentiment/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"path/filepath"
	"sort"
	"testing"
)

func writeLexicons(t *testing.T, files map[string]string) types.LexiconConfig {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return types.LexiconConfig{
		Stopwords:       filepath.Join(dir, "stopwords.txt"),
		PositiveWords:   filepath.Join(dir, "positive_words.txt"),
		NegativeWords:   filepath.Join(dir, "negative_words.txt"),
		PositivePhrases: filepath.Join(dir, "positive_phrases.txt"),
		NegativePhrases: filepath.Join(dir, "negative_phrases.txt"),
	}
}

func TestLoad(t *testing.T) {
	cfg := writeLexicons(t, map[string]string{
		"stopwords.txt":        "ve\nbu\n",
		"positive_words.txt":   "iyi\n  güzel \n\n",
		"negative_words.txt":   "kötü\nberbat\ngüzel\n",
		"positive_phrases.txt": "çok iyi\n",
		"negative_phrases.txt": "hiç beğenmedim\n",
	})

	lex, err := Load(resources.Store{}, cfg, nil)
	require.NoError(t, err)

	assert.True(t, lex.IsStopword("ve"))
	assert.True(t, lex.IsPositiveWord("güzel"))
	assert.True(t, lex.IsNegativeWord("berbat"))
	assert.True(t, lex.IsPositivePhrase("çok iyi"))
	assert.True(t, lex.IsNegativePhrase("hiç beğenmedim"))
	assert.False(t, lex.IsPositiveWord(""))
	assert.Equal(t, []string{"güzel"}, lex.Ambiguous())
	assert.Equal(t, Stats{
		Stopwords:       2,
		PositiveWords:   2,
		NegativeWords:   3,
		PositivePhrases: 1,
		NegativePhrases: 1,
		NegationMarkers: 8,
	}, lex.Stats())

	words := lex.Words()
	sort.Strings(words)
	assert.Equal(t, []string{"berbat", "güzel", "güzel", "iyi", "kötü"}, words)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := writeLexicons(t, map[string]string{
		"stopwords.txt":      "ve\n",
		"positive_words.txt": "iyi\n",
	})

	_, err := Load(resources.Store{}, cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative_words")
}

func TestNegationMarkers(t *testing.T) {
	lex := New(Sets{NegationMarkers: []string{"asla"}})
	assert.Equal(t, map[string]bool{"asla": true}, lex.NegationMarkers())

	lex = New(Sets{})
	assert.True(t, lex.NegationMarkers()["değil"])

	markers := lex.NegationMarkers()
	markers["yeni"] = true
	assert.False(t, lex.NegationMarkers()["yeni"])
}
