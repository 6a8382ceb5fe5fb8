package console

import (
	"bufio"
	"context"
	"duygu.io/sentiment/evaluation"
	"duygu.io/sentiment/types"
	"fmt"
	"io"
	"strings"
)

const (
	Prompt   = "Cümle: "
	QuitWord = "q"

	greeting = "Lütfen analiz etmek istediğiniz cümleleri girin. Çıkmak için 'q' yazın."

	maxLineSize = 1024 * 1024
)

type Classifier interface {
	Classify(ctx context.Context, raw string) types.Result
}

// REPL reads sentences from in until "q", end of input or cancellation, and writes each label to out.
// Blank lines are ignored. Cancellation is noticed while waiting for input.
func REPL(ctx context.Context, classifier Classifier, in io.Reader, out io.Writer) error {
	if _, err := fmt.Fprintln(out, greeting); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go scanLines(scanner, lines, scanErr, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprint(out, Prompt); err != nil {
			return err
		}

		var line string
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				_, _ = fmt.Fprintln(out)
				return <-scanErr
			}
			line = l
		}

		trimmed := strings.TrimSpace(line)
		if strings.EqualFold(trimmed, QuitWord) {
			return nil
		}
		if trimmed == "" {
			continue
		}

		result := classifier.Classify(ctx, line)
		if _, err := fmt.Fprintf(out, "\nCümle: %s\nAnaliz Sonucu: %s\n\n", line, result.Label.Name()); err != nil {
			return err
		}
	}
}

// scanLines stays blocked on a reader that never returns, e.g. a terminal after Ctrl-C.
// The process exit reclaims it.
func scanLines(scanner *bufio.Scanner, lines chan<- string, scanErr chan<- error, done <-chan struct{}) {
	defer close(lines)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
	scanErr <- scanner.Err()
}

// PrintReport writes the four metrics with two decimals.
func PrintReport(out io.Writer, report evaluation.Report) error {
	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "Performans Metrikleri:")
	fmt.Fprintf(w, "Doğruluk: %.2f\n", report.Metrics.Accuracy)
	fmt.Fprintf(w, "Kesinlik (Precision): %.2f\n", report.Metrics.Precision)
	fmt.Fprintf(w, "Anma (Recall): %.2f\n", report.Metrics.Recall)
	fmt.Fprintf(w, "F1 Skoru: %.2f\n", report.Metrics.F1)
	if report.Errors > 0 {
		fmt.Fprintf(w, "Hatalı satır: %d\n", report.Errors)
	}
	if report.Skipped > 0 {
		fmt.Fprintf(w, "Atlanan satır: %d\n", report.Skipped)
	}
	return w.Flush()
}
