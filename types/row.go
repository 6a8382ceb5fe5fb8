package types

type Row struct {
	Sentence string `json:"sentence"`
	Label    Label  `json:"label"`
}
