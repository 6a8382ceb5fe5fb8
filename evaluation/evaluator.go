package evaluation

import (
	"context"
	"duygu.io/sentiment/logger"
	"duygu.io/sentiment/types"
	"encoding/json"
	"github.com/rs/zerolog"
	"time"
)

// Classifier labels raw text. *sentiment.Scorer satisfies it.
type Classifier interface {
	Classify(ctx context.Context, raw string) types.Result
}

type Report struct {
	Confusion Confusion     `json:"confusion"`
	Metrics   Metrics       `json:"metrics"`
	Rows      int           `json:"rows"`
	Errors    int           `json:"errors"`
	Skipped   int           `json:"skipped"`
	Cancelled bool          `json:"cancelled"`
	Duration  time.Duration `json:"duration_ns"`
}

func (report Report) JSON() ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

type Evaluator struct {
	classifier Classifier
	fdlLogger  zerolog.Logger
}

func NewEvaluator(classifier Classifier) *Evaluator {
	return &Evaluator{
		classifier: classifier,
		fdlLogger:  logger.NewLogger("Evaluator"),
	}
}

// Evaluate classifies rows in order. Failed rows are counted in Errors and leave the confusion counters alone.
// A cancelled context stops the loop and marks the report as Cancelled.
func (evaluator *Evaluator) Evaluate(ctx context.Context, rows []types.Row) Report {
	started := time.Now()
	var report Report

	for i, row := range rows {
		if ctx.Err() != nil {
			evaluator.fdlLogger.Warn().Int("row", i).Msg("Evaluation cancelled")
			report.Cancelled = true
			break
		}
		report.Rows++

		result := evaluator.classifier.Classify(ctx, row.Sentence)
		if result.Failed() || !report.Confusion.Observe(row.Label, result.Label) {
			report.Errors++
			evaluator.fdlLogger.Warn().
				Int("row", i).
				Str("sentence", row.Sentence).
				Str("error", result.ErrorMessage()).
				Msg("Row could not be classified and is left out of the metrics")
			continue
		}
		evaluator.fdlLogger.Debug().
			Int("row", i).
			Str("truth", row.Label.Name()).
			Str("predicted", result.Label.Name()).
			Int("score", result.Score).
			Msg("Row classified")
	}

	report.Metrics = report.Confusion.Metrics()
	report.Duration = time.Since(started)
	evaluator.fdlLogger.Info().
		Int("rows", report.Rows).
		Int("errors", report.Errors).
		Float64("accuracy", report.Metrics.Accuracy).
		Msg("Evaluation finished")
	return report
}
