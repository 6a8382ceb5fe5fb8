package negation

// Tagger marks the token right before every negation marker.
type Tagger struct {
	markers map[string]bool
}

// NewTagger uses the default markers when markers is empty.
func NewTagger(markers map[string]bool) Tagger {
	if len(markers) == 0 {
		markers = GetDefaultMarkers()
	}
	return Tagger{markers: markers}
}

func (tagger Tagger) IsMarker(token string) bool {
	return tagger.markers[token]
}

// Tag returns a copy of tokens where every token followed by a marker gets Prefix.
// Markers stay untouched and a marker at position 0 tags nothing.
func (tagger Tagger) Tag(tokens []string) []string {
	tagged := make([]string, len(tokens))
	copy(tagged, tokens)

	for i, token := range tokens {
		if i == 0 || !tagger.markers[token] {
			continue
		}
		tagged[i-1] = Prefix + tagged[i-1]
	}
	return tagged
}

func (tagger Tagger) HasNegation(tokens []string) bool {
	for _, token := range tokens {
		if tagger.markers[token] {
			return true
		}
	}
	return false
}
