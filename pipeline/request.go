package pipeline

import "duygu.io/sentiment/types"

// Request doubles as the queue message body: {"id": "...", "text": "..."}.
type Request struct {
	Text string `json:"text"`
	Tid  string `json:"id"`
}

// Response is the JSON document a Pipeline produces.
type Response struct {
	ID      string      `json:"id"`
	Text    string      `json:"text"`
	Label   types.Label `json:"label"`
	Score   int         `json:"score"`
	Negated bool        `json:"negated"`
	Roots   []string    `json:"roots,omitempty"`
	NGrams  []string    `json:"ngrams,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func NewResponse(request Request, result types.Result) Response {
	return Response{
		ID:      request.Tid,
		Text:    request.Text,
		Label:   result.Label,
		Score:   result.Score,
		Negated: result.Negated,
		Roots:   result.Roots,
		NGrams:  result.NGrams,
		Error:   result.ErrorMessage(),
	}
}

func (response Response) Failed() bool {
	return response.Error != "" || response.Label == types.LabelError
}
