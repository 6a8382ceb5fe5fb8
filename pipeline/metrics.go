package pipeline

import "github.com/prometheus/client_golang/prometheus"

var (
	classifiedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "duygu",
			Name:      "classifications_total",
			Help:      "Classified sentences by label",
		},
		[]string{"label"},
	)
	classifyDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "duygu",
			Name:      "classification_duration_seconds",
			Help:      "Time spent classifying one sentence",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
	)
)

// RegisterMetrics adds the pipeline collectors to the default registry.
func RegisterMetrics() error {
	for _, c := range []prometheus.Collector{classifiedCounter, classifyDuration} {
		if err := register(c); err != nil {
			return err
		}
	}
	return nil
}

// register tries to register or reregister the collector
func register(c prometheus.Collector) error {
	err := prometheus.Register(c)
	if err != nil {
		prometheus.Unregister(c)
		err = prometheus.Register(c)
	}
	return err
}
