package pipeline

import (
	"context"
	"duygu.io/sentiment/types"
	"encoding/json"
	"errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type stubClassifier struct {
	result types.Result
}

func (stub stubClassifier) Classify(ctx context.Context, raw string) types.Result {
	res := stub.result
	res.Sentence = raw
	return res
}

func TestSentimentPipeline(t *testing.T) {
	ppln := Sentiment(context.Background(), stubClassifier{types.Result{
		Label: types.LabelPositive,
		Score: 2,
		Roots: []string{"iyi"},
	}})
	before := testutil.ToFloat64(classifiedCounter.WithLabelValues(types.LabelPositive.Name()))

	out, ok := <-ppln(Request{Tid: "42", Text: "Çok iyi"})
	require.True(t, ok)

	var response Response
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, Response{
		ID:    "42",
		Text:  "Çok iyi",
		Label: types.LabelPositive,
		Score: 2,
		Roots: []string{"iyi"},
	}, response)
	assert.False(t, response.Failed())
	assert.Equal(t, before+1, testutil.ToFloat64(classifiedCounter.WithLabelValues(types.LabelPositive.Name())))
}

func TestSentimentPipelineFailure(t *testing.T) {
	ppln := Sentiment(context.Background(), stubClassifier{types.Result{
		Label: types.LabelError,
		Err:   errors.New("analysis failure: engine is stopped"),
	}})

	out := <-ppln(Request{Tid: "7", Text: "bozuk"})

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	assert.Equal(t, "Hata", raw["label"])
	assert.Equal(t, "analysis failure: engine is stopped", raw["error"])
	assert.Equal(t, "7", raw["id"])
}

func TestRequestFromMessage(t *testing.T) {
	var request Request
	require.NoError(t, json.Unmarshal([]byte(`{"id": "abc", "text": "Hiç sevmedim"}`), &request))
	assert.Equal(t, Request{Tid: "abc", Text: "Hiç sevmedim"}, request)
}

func TestRegisterMetricsTwice(t *testing.T) {
	require.NoError(t, RegisterMetrics())
	require.NoError(t, RegisterMetrics())
}
