package negation

const Prefix = "NOT_"

func GetDefaultMarkers() map[string]bool {
	return map[string]bool{
		"değil":       true,
		"yok":         true,
		"hiç":         true,
		"hiçbir":      true,
		"istemiyorum": true,
		"sevmedim":    true,
		"sevmiyorum":  true,
		"beğenmedi":   true,
	}
}
