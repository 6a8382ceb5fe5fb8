package evaluation

import "duygu.io/sentiment/types"

// Confusion counts predictions against true labels, Positive being the positive class.
type Confusion struct {
	TP int `json:"tp"`
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
}

// Observe increments exactly one counter. Error predictions count nowhere and return false.
func (c *Confusion) Observe(truth types.Label, predicted types.Label) bool {
	switch {
	case predicted == types.LabelError || truth == types.LabelError:
		return false
	case truth == types.LabelPositive && predicted == types.LabelPositive:
		c.TP++
	case truth == types.LabelNegative && predicted == types.LabelNegative:
		c.TN++
	case truth == types.LabelNegative && predicted == types.LabelPositive:
		c.FP++
	default:
		c.FN++
	}
	return true
}

func (c Confusion) Total() int {
	return c.TP + c.TN + c.FP + c.FN
}

type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Metrics derives the four scores. A zero denominator yields 0.
func (c Confusion) Metrics() Metrics {
	precision := ratio(c.TP, c.TP+c.FP)
	recall := ratio(c.TP, c.TP+c.FN)
	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return Metrics{
		Accuracy:  ratio(c.TP+c.TN, c.Total()),
		Precision: precision,
		Recall:    recall,
		F1:        f1,
	}
}

func ratio(n int, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
