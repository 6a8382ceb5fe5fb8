package types

import (
	"encoding/json"
	"fmt"
)

type Label int8

const (
	LabelNegative Label = -1
	LabelError    Label = 0
	LabelPositive Label = 1
)

// Name returns the display name printed by the console and stored in reports.
func (l Label) Name() string {
	switch l {
	case LabelPositive:
		return "Pozitif"
	case LabelNegative:
		return "Negatif"
	default:
		return "Hata"
	}
}

func (l Label) String() string {
	return l.Name()
}

func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Name())
}

func (l *Label) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == LabelError.Name() {
		*l = LabelError
		return nil
	}
	parsed, err := ParseLabel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLabel accepts the dataset spellings only. The match is case sensitive.
func ParseLabel(s string) (Label, error) {
	switch s {
	case "Pozitif", "Positive":
		return LabelPositive, nil
	case "Negatif", "Negative":
		return LabelNegative, nil
	}
	return LabelError, fmt.Errorf("unknown label %q", s)
}
