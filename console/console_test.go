package console

import (
	"bytes"
	"context"
	"duygu.io/sentiment/evaluation"
	"duygu.io/sentiment/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"strings"
	"testing"
	"time"
)

type recordingClassifier struct {
	seen []string
}

func (c *recordingClassifier) Classify(ctx context.Context, raw string) types.Result {
	c.seen = append(c.seen, raw)
	if strings.Contains(raw, "iyi") {
		return types.Result{Label: types.LabelPositive, Score: 1}
	}
	return types.Result{Label: types.LabelNegative}
}

func TestREPL(t *testing.T) {
	classifier := &recordingClassifier{}
	in := strings.NewReader("Çok iyi!\n\n   \nberbat\n Q \nbu satır okunmaz\n")
	var out bytes.Buffer

	require.NoError(t, REPL(context.Background(), classifier, in, &out))
	assert.Equal(t, []string{"Çok iyi!", "berbat"}, classifier.seen)
	assert.Contains(t, out.String(), "\nCümle: Çok iyi!\nAnaliz Sonucu: Pozitif\n")
	assert.Contains(t, out.String(), "\nCümle: berbat\nAnaliz Sonucu: Negatif\n")
	// five prompts plus two echoed sentences
	assert.Equal(t, 7, strings.Count(out.String(), Prompt))
}

func TestREPLEndOfInput(t *testing.T) {
	classifier := &recordingClassifier{}
	var out bytes.Buffer

	require.NoError(t, REPL(context.Background(), classifier, strings.NewReader("iyi"), &out))
	assert.Equal(t, []string{"iyi"}, classifier.seen)
}

func TestREPLCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	err := REPL(ctx, &recordingClassifier{}, strings.NewReader("iyi\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestREPLCancelledWhileWaitingForInput(t *testing.T) {
	in, writer := io.Pipe()
	defer writer.Close()
	ctx, cancel := context.WithCancel(context.Background())
	classifier := &recordingClassifier{}
	var out bytes.Buffer

	errc := make(chan error, 1)
	go func() {
		errc <- REPL(ctx, classifier, in, &out)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("REPL did not return after cancellation")
	}
	assert.Empty(t, classifier.seen)
}

func TestREPLLongLine(t *testing.T) {
	long := strings.Repeat("iyi ", 50*1024)
	classifier := &recordingClassifier{}
	var out bytes.Buffer

	require.NoError(t, REPL(context.Background(), classifier, strings.NewReader(long+"\nq\n"), &out))
	require.Len(t, classifier.seen, 1)
	assert.Equal(t, long, classifier.seen[0])
	assert.Contains(t, out.String(), "Analiz Sonucu: Pozitif")
}

func TestPrintReport(t *testing.T) {
	report := evaluation.Report{
		Metrics: evaluation.Metrics{Accuracy: 1, Precision: 0.666666, Recall: 0.5, F1: 0.57142},
		Skipped: 2,
	}
	var out bytes.Buffer

	require.NoError(t, PrintReport(&out, report))
	assert.Equal(t, "Performans Metrikleri:\n"+
		"Doğruluk: 1.00\n"+
		"Kesinlik (Precision): 0.67\n"+
		"Anma (Recall): 0.50\n"+
		"F1 Skoru: 0.57\n"+
		"Atlanan satır: 2\n", out.String())
}
