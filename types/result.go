package types

type Result struct {
	Sentence string   `json:"sentence"`
	Label    Label    `json:"label"`
	Score    int      `json:"score"`
	Tokens   []string `json:"tokens,omitempty"`
	Tagged   []string `json:"tagged,omitempty"`
	NGrams   []string `json:"ngrams,omitempty"`
	Roots    []string `json:"roots,omitempty"`
	Negated  bool     `json:"negated"`
	Err      error    `json:"-"`
}

func (r Result) Failed() bool {
	return r.Err != nil || r.Label == LabelError
}

// ErrorMessage is empty for successful results.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
