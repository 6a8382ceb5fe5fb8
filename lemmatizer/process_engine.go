package lemmatizer

import (
	"bufio"
	"context"
	"duygu.io/sentiment/logger"
	"duygu.io/sentiment/types"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const (
	processCloseTimeout = 5 * time.Second
	responseBufferSize  = 16
)

type processError struct {
	Error string `json:"error"`
}

// ProcessEngine talks to an external analyzer process over stdin/stdout:
// one sentence per line in, one JSON array of {"token","root"} per line out.
// A line holding {"error": "..."} reports a failure for that sentence.
type ProcessEngine struct {
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	responses  <-chan string
	readerDone <-chan struct{}
	fdlLogger  zerolog.Logger

	mu     sync.Mutex
	broken bool

	closeOnce sync.Once
	closeErr  error
}

func NewProcessEngine(cfg types.AnalyzerConfig) (*ProcessEngine, error) {
	fdlLogger := logger.NewLogger("Process engine").With().Str("command", cfg.Command).Logger()
	errLogger := fdlLogger.With().Caller().Logger()

	cmd := exec.Command(cfg.Command, cfg.Args...)
	cmd.Env = append(os.Environ(), cfg.Env...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		errLogger.Err(err).Msg("Could not create stdin pipe")
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		errLogger.Err(err).Msg("Could not create stdout pipe")
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		errLogger.Err(err).Msg("Could not create stderr pipe")
		return nil, err
	}

	if err = cmd.Start(); err != nil {
		errLogger.Err(err).Msg("Could not launch analyzer process")
		return nil, fmt.Errorf("start analyzer process: %w", err)
	}
	fdlLogger.Info().Int("pid", cmd.Process.Pid).Msg("Analyzer process started")

	responses := make(chan string, responseBufferSize)
	readerDone := make(chan struct{})
	go collectResponses(stdout, responses, readerDone, fdlLogger)
	go collectLogs(stderr, fdlLogger)

	return &ProcessEngine{
		cmd:        cmd,
		stdin:      stdin,
		responses:  responses,
		readerDone: readerDone,
		fdlLogger:  fdlLogger,
	}, nil
}

func (engine *ProcessEngine) Analyze(ctx context.Context, sentence string) ([]types.Analysis, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.broken {
		return nil, ErrEngineDesynchronized
	}

	line := strings.ReplaceAll(sentence, "\n", " ") + "\n"
	if _, err := io.WriteString(engine.stdin, line); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineStopped, err)
	}

	select {
	case response, ok := <-engine.responses:
		if !ok {
			return nil, ErrEngineStopped
		}
		return parseResponse(response)
	case <-ctx.Done():
		// the pending response would be read by the next request
		engine.broken = true
		return nil, ctx.Err()
	}
}

// Close stops the process exactly once. Later calls return the first result.
func (engine *ProcessEngine) Close() error {
	engine.closeOnce.Do(func() {
		_ = engine.stdin.Close()
		// unread replies would otherwise block the stdout reader on a full channel
		go func() {
			for range engine.responses {
			}
		}()

		select {
		case <-engine.readerDone:
		case <-time.After(processCloseTimeout):
			engine.fdlLogger.Warn().Msg("Analyzer process did not stop in time, killing it")
			_ = engine.cmd.Process.Kill()
		}

		err := engine.cmd.Wait()
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			engine.closeErr = err
		}
		engine.fdlLogger.Info().Msg("Analyzer process stopped")
	})
	return engine.closeErr
}

func parseResponse(response string) ([]types.Analysis, error) {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "{") {
		var pErr processError
		if err := json.Unmarshal([]byte(response), &pErr); err != nil {
			return nil, fmt.Errorf("malformed analyzer response: %w", err)
		}
		return nil, fmt.Errorf("analyzer: %s", pErr.Error)
	}

	var analyses []types.Analysis
	if err := json.Unmarshal([]byte(response), &analyses); err != nil {
		return nil, fmt.Errorf("malformed analyzer response: %w", err)
	}
	return analyses, nil
}

func collectResponses(r io.Reader, responses chan<- string, done chan<- struct{}, fdlLogger zerolog.Logger) {
	defer close(done)
	defer close(responses)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		responses <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		fdlLogger.Err(err).Msg("Error scanning analyzer stdout")
	}
}

func collectLogs(r io.Reader, fdlLogger zerolog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); len(line) > 0 {
			fdlLogger.Debug().Str("stderr", line).Msg("Analyzer process output")
		}
	}
}
