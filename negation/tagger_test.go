package negation

import (
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestTag(t *testing.T) {
	tagger := NewTagger(nil)

	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{"empty", []string{}, []string{}},
		{"no marker", []string{"çok", "güzel"}, []string{"çok", "güzel"}},
		{"adjacent previous token", []string{"seviyorum", "değil"}, []string{"NOT_seviyorum", "değil"}},
		{"marker at index 0", []string{"değil", "güzel"}, []string{"değil", "güzel"}},
		{"only one token back", []string{"bu", "ürün", "iyi", "değil"}, []string{"bu", "ürün", "NOT_iyi", "değil"}},
		{"independent markers", []string{"iyi", "yok", "güzel", "değil"}, []string{"NOT_iyi", "yok", "NOT_güzel", "değil"}},
		{"marker before marker", []string{"hiç", "yok"}, []string{"NOT_hiç", "yok"}},
		{"consecutive markers stack", []string{"iyi", "hiç", "yok"}, []string{"NOT_iyi", "NOT_hiç", "yok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.Tag(tt.tokens)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tag() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTagDoesNotMutateInput(t *testing.T) {
	tokens := []string{"seviyorum", "değil"}
	_ = NewTagger(nil).Tag(tokens)
	assert.Equal(t, []string{"seviyorum", "değil"}, tokens)
}

func TestHasNegation(t *testing.T) {
	tagger := NewTagger(nil)
	assert.True(t, tagger.HasNegation([]string{"hiç", "sevmedim"}))
	assert.True(t, tagger.HasNegation([]string{"güzel", "değil"}))
	assert.False(t, tagger.HasNegation([]string{"çok", "güzel"}))
	assert.False(t, tagger.HasNegation(nil))
}

func TestCustomMarkers(t *testing.T) {
	tagger := NewTagger(map[string]bool{"asla": true})
	assert.True(t, tagger.IsMarker("asla"))
	assert.False(t, tagger.IsMarker("değil"))
	assert.Equal(t, []string{"NOT_gelmem", "asla"}, tagger.Tag([]string{"gelmem", "asla"}))
}
