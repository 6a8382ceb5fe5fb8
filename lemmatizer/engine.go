package lemmatizer

import (
	"context"
	"duygu.io/sentiment/types"
	"errors"
	"fmt"
	"io"
)

var (
	ErrEngineStopped        = errors.New("lemmatizer: engine is stopped")
	ErrEngineDesynchronized = errors.New("lemmatizer: engine lost a response after cancellation")
)

// Engine returns the best analysis of every token of a sentence.
// Close releases the engine and is safe to call more than once.
type Engine interface {
	Analyze(ctx context.Context, sentence string) ([]types.Analysis, error)
	Close() error
}

type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// New starts the engine selected in cfg. knownRoots extend the root set of the suffix engine.
func New(cfg types.AnalyzerConfig, opener Opener, knownRoots []string) (Engine, error) {
	switch cfg.Engine {
	case types.EngineSuffix, "":
		rules, err := LoadSuffixRules(opener, cfg.RootsFile, cfg.SuffixesFile)
		if err != nil {
			return nil, err
		}
		rules.AddRoots(knownRoots)
		return NewSuffixEngine(rules), nil
	case types.EngineProcess:
		return NewProcessEngine(cfg)
	}
	return nil, fmt.Errorf("%w: %q", types.ErrUnknownEngine, cfg.Engine)
}
