package main

import (
	"context"
	"duygu.io/sentiment/api"
	"duygu.io/sentiment/console"
	"duygu.io/sentiment/dataset"
	"duygu.io/sentiment/evaluation"
	"duygu.io/sentiment/lemmatizer"
	"duygu.io/sentiment/lexicon"
	"duygu.io/sentiment/logger"
	"duygu.io/sentiment/pipeline"
	"duygu.io/sentiment/resources"
	"duygu.io/sentiment/s3client"
	"duygu.io/sentiment/sentiment"
	"duygu.io/sentiment/types"
	"duygu.io/sentiment/worker"
	"errors"
	"flag"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type Config struct {
	ConfigPath  string `envconfig:"DUYGU_CONFIG_PATH" required:"true"`
	ConfigPatch string `envconfig:"DUYGU_CONFIG_PATCH" default:""`
	RestAPIPort string `envconfig:"DUYGU_REST_API_PORT" default:"10000"`
}

const (
	modeSession     = "session"
	modeInteractive = "interactive"
	modeEvaluate    = "evaluate"
	modeServe       = "serve"
	modeWorker      = "worker"

	workerRestartDelay = 5 * time.Second
	shutdownTimeout    = 10 * time.Second
)

var errNoDataset = errors.New("dataset path is not configured")

func main() {
	logger.SetupLogging()
	mode := flag.String("mode", modeSession,
		"one of session (interactive, then evaluate), interactive, evaluate, serve, worker")
	flag.Parse()
	os.Exit(run(*mode))
}

// run owns the analyzer engine: it is closed exactly once on every return path.
func run(mode string) int {
	fdlLogger := logger.NewLogger("Main")
	errLogger := fdlLogger.With().Caller().Logger()

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		errLogger.Err(err).Msg("Failed to read environment")
		return 1
	}
	cfg, err := types.LoadConfiguration(config.ConfigPath, config.ConfigPatch)
	if err != nil {
		errLogger.Err(err).Msg("Failed to load configuration")
		return fail(err)
	}
	fdlLogger.Info().Str("config", cfg.Name).Str("mode", mode).Msg("Configuration loaded")

	store, err := newStore(cfg)
	if err != nil {
		errLogger.Err(err).Msg("Failed to create S3 client")
		return fail(err)
	}
	lex, err := lexicon.Load(store, cfg.Lexicon, cfg.NegationMarkers)
	if err != nil {
		errLogger.Err(err).Msg("Failed to load lexicon")
		return fail(err)
	}
	engine, err := lemmatizer.New(cfg.Analyzer, store, lex.Words())
	if err != nil {
		errLogger.Err(err).Msg("Failed to start analyzer engine")
		return fail(err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			errLogger.Err(err).Msg("Analyzer engine stopped with error")
			return
		}
		fdlLogger.Info().Msg("Analyzer engine closed")
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scorer := sentiment.NewScorer(lex, engine, nil)
	switch mode {
	case modeSession:
		if err = console.REPL(ctx, scorer, os.Stdin, os.Stdout); err == nil {
			err = evaluate(ctx, cfg, store, scorer)
		}
	case modeInteractive:
		err = console.REPL(ctx, scorer, os.Stdin, os.Stdout)
	case modeEvaluate:
		err = evaluate(ctx, cfg, store, scorer)
	case modeServe:
		err = serve(ctx, config.RestAPIPort, scorer, fdlLogger)
	case modeWorker:
		err = runWorker(ctx, scorer, fdlLogger)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		errLogger.Err(err).Str("mode", mode).Msg("Run failed")
		return fail(err)
	}
	return 0
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Hata oluştu: %v\n", err)
	return 1
}

// newStore creates the S3 client only when some configured path needs it.
func newStore(cfg types.Configuration) (resources.Store, error) {
	paths := []string{cfg.Analyzer.RootsFile, cfg.Analyzer.SuffixesFile, cfg.Dataset.Path, cfg.Report.Path}
	for _, p := range cfg.Lexicon.Paths() {
		paths = append(paths, p)
	}
	if !resources.AnyS3(paths...) {
		return resources.Store{}, nil
	}
	client, err := s3client.New()
	if err != nil {
		return resources.Store{}, err
	}
	return resources.Store{S3: client}, nil
}

func evaluate(ctx context.Context, cfg types.Configuration, store resources.Store, scorer *sentiment.Scorer) error {
	if cfg.Dataset.Path == "" {
		return errNoDataset
	}
	ds, err := dataset.Load(store, cfg.Dataset)
	if err != nil {
		return err
	}

	report := evaluation.NewEvaluator(scorer).Evaluate(ctx, ds.Rows)
	report.Skipped = ds.Skipped
	if err = console.PrintReport(os.Stdout, report); err != nil {
		return err
	}

	if cfg.Report.Path == "" {
		return nil
	}
	b, err := report.JSON()
	if err != nil {
		return err
	}
	if err = store.Write(cfg.Report.Path, b); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func serve(ctx context.Context, port string, scorer *sentiment.Scorer, fdlLogger zerolog.Logger) error {
	if err := pipeline.RegisterMetrics(); err != nil {
		return err
	}
	apiRequest := &api.Request{
		Pipeline: pipeline.Sentiment(ctx, scorer),
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: apiRequest.Routes(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fdlLogger.Info().Msgf("REST API on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runWorker(ctx context.Context, scorer *sentiment.Scorer, fdlLogger zerolog.Logger) error {
	if err := pipeline.RegisterMetrics(); err != nil {
		return err
	}
	ppln := pipeline.Sentiment(ctx, scorer)

	fdlLogger.Info().Msg("Start sentiment worker")
	for ctx.Err() == nil {
		rmqWorker, err := worker.New(ppln)
		if err != nil {
			return fmt.Errorf("could not initialize RMQ worker: %w", err)
		}
		if err = rmqWorker.StartWorker(ctx); err != nil {
			fdlLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			select {
			case <-time.After(workerRestartDelay):
			case <-ctx.Done():
			}
		}
	}
	return nil
}
