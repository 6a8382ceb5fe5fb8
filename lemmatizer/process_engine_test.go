package lemmatizer

import (
	"bufio"
	"context"
	"duygu.io/sentiment/types"
	"encoding/json"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

const helperEnv = "DUYGU_WANT_HELPER_PROCESS"

// TestHelperProcess is not a real test. It is the analyzer process started by the tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		switch line {
		case "boom":
			fmt.Println(`{"error":"analysis failed"}`)
			continue
		case "garbage":
			fmt.Println(`[{"token":`)
			continue
		case "sleep":
			time.Sleep(300 * time.Millisecond)
		}
		out := make([]types.Analysis, 0)
		for _, tok := range strings.Fields(line) {
			root := ""
			if strings.HasPrefix(tok, "sev") {
				root = "sev"
			}
			out = append(out, types.Analysis{Token: tok, Root: root})
		}
		b, _ := json.Marshal(out)
		fmt.Println(string(b))
	}
	os.Exit(0)
}

func newHelperEngine(t *testing.T) *ProcessEngine {
	t.Helper()
	engine, err := NewProcessEngine(types.AnalyzerConfig{
		Engine:  types.EngineProcess,
		Command: os.Args[0],
		Args:    []string{"-test.run=TestHelperProcess", "--"},
		Env:     []string{helperEnv + "=1"},
	})
	require.NoError(t, err)
	return engine
}

func TestProcessEngineAnalyze(t *testing.T) {
	engine := newHelperEngine(t)
	defer engine.Close()

	analyses, err := engine.Analyze(context.Background(), "hiç sevmedim")
	require.NoError(t, err)
	assert.Equal(t, []types.Analysis{{Token: "hiç"}, {Token: "sevmedim", Root: "sev"}}, analyses)

	_, err = engine.Analyze(context.Background(), "boom")
	assert.EqualError(t, err, "analyzer: analysis failed")

	_, err = engine.Analyze(context.Background(), "garbage")
	assert.Error(t, err)

	analyses, err = engine.Analyze(context.Background(), "seviyorum")
	require.NoError(t, err)
	assert.Equal(t, []types.Analysis{{Token: "seviyorum", Root: "sev"}}, analyses)
}

func TestProcessEngineCloseOnce(t *testing.T) {
	engine := newHelperEngine(t)

	assert.NoError(t, engine.Close())
	assert.NoError(t, engine.Close())

	_, err := engine.Analyze(context.Background(), "sev")
	assert.Error(t, err)
}

func TestProcessEngineCloseWithUnreadResponses(t *testing.T) {
	engine := newHelperEngine(t)

	for i := 0; i < 4*responseBufferSize; i++ {
		_, err := io.WriteString(engine.stdin, "sev\n")
		require.NoError(t, err)
	}

	start := time.Now()
	assert.NoError(t, engine.Close())
	assert.Less(t, time.Since(start), processCloseTimeout)

	select {
	case <-engine.readerDone:
	case <-time.After(time.Second):
		t.Fatal("stdout reader still running after Close")
	}
}

func TestProcessEngineCancellation(t *testing.T) {
	engine := newHelperEngine(t)
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := engine.Analyze(ctx, "sleep")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = engine.Analyze(context.Background(), "sev")
	assert.ErrorIs(t, err, ErrEngineDesynchronized)
}

func TestProcessEngineStartFailure(t *testing.T) {
	_, err := NewProcessEngine(types.AnalyzerConfig{Command: "/nonexistent/zemberek-bridge"})
	assert.Error(t, err)
}
