package worker

import (
	"duygu.io/sentiment/tokenizer"
	"duygu.io/sentiment/utils"
	"strconv"
	"time"
)

const (
	resultKeyPrefix = "duygu:result:"
	sender          = "duygu"
)

// getResultKey keys the cache by the normalized sentence, so inputs differing only in case or punctuation share it.
func getResultKey(text string) string {
	return resultKeyPrefix + strconv.FormatUint(utils.HashString(tokenizer.Normalize(text)), 16)
}

const RFC3339Micro = "2006-01-02T15:04:05.000000-07:00"

func getFormattedNow() string {
	return time.Now().UTC().Format(RFC3339Micro)
}
