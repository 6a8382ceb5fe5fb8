package pipeline

import (
	"context"
	"duygu.io/sentiment/logger"
	"duygu.io/sentiment/types"
	"encoding/json"
	"time"
)

type Pipeline func(request Request) <-chan string

type Classifier interface {
	Classify(ctx context.Context, raw string) types.Result
}

// Sentiment classifies the request text and sends one JSON encoded Response on the returned channel.
func Sentiment(ctx context.Context, classifier Classifier) Pipeline {
	fdlLogger := logger.NewLogger("Sentiment pipeline")

	return func(request Request) <-chan string {
		responseChan := make(chan string, 1)
		pplnLog := fdlLogger.With().Str("tid", request.Tid).Logger()
		errLogger := pplnLog.With().Caller().Logger()

		go func() {
			defer close(responseChan)

			started := time.Now()
			result := classifier.Classify(ctx, request.Text)
			classifyDuration.Observe(time.Since(started).Seconds())
			classifiedCounter.WithLabelValues(result.Label.Name()).Inc()

			if result.Failed() {
				errLogger.Err(result.Err).Msg("Sentence could not be classified")
			}

			buf, err := json.Marshal(NewResponse(request, result))
			if err != nil {
				errLogger.Err(err).Msg("Failed to marshall response")
				return
			}
			pplnLog.Debug().
				Str("label", result.Label.Name()).
				Int("score", result.Score).
				Msg("Finished sentiment pipeline")
			responseChan <- string(buf)
		}()

		return responseChan
	}
}
