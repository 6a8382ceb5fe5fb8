package types

// Analysis is one token of a disambiguated morphological analysis.
// Root is empty when the engine could not find one.
type Analysis struct {
	Token string `json:"token"`
	Root  string `json:"root"`
}
