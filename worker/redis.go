package worker

import (
	"duygu.io/sentiment/pipeline"
	"duygu.io/sentiment/redis"
	"duygu.io/sentiment/types"
	"time"
)

// Stats is the lock-protected statistics document shared by all workers.
type Stats struct {
	Total     int    `json:"total"`
	Positive  int    `json:"positive"`
	Negative  int    `json:"negative"`
	Errors    int    `json:"errors"`
	CacheHits int    `json:"cache_hits"`
	UpdatedAt string `json:"updated_at"`
}

func (stats *Stats) add(response pipeline.Response, cached bool) {
	stats.Total++
	switch {
	case response.Failed():
		stats.Errors++
	case response.Label == types.LabelPositive:
		stats.Positive++
	default:
		stats.Negative++
	}
	if cached {
		stats.CacheHits++
	}
	stats.UpdatedAt = getFormattedNow()
}

type redisTransactions interface {
	getResult(task *Task) (string, bool, error)
	saveResult(task *Task, result string) error
	updateStats(task *Task, response pipeline.Response, cached bool) error
	close()
}

type redisClientWrapper struct {
	client    *redis.Client
	resultTTL time.Duration
	statsKey  string
}

func (wrapper *redisClientWrapper) close() {
	_ = wrapper.client.Close()
}

func (wrapper *redisClientWrapper) getResult(task *Task) (string, bool, error) {
	return wrapper.client.Get(task.resultKey)
}

func (wrapper *redisClientWrapper) saveResult(task *Task, result string) error {
	return wrapper.client.Set(task.resultKey, result, wrapper.resultTTL)
}

func (wrapper *redisClientWrapper) updateStats(task *Task, response pipeline.Response, cached bool) error {
	var stats Stats
	return wrapper.client.UpdateDoc(wrapper.statsKey, &stats, func() {
		stats.add(response, cached)
	})
}
