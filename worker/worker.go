package worker

import (
	"context"
	"duygu.io/sentiment/logger"
	"duygu.io/sentiment/pipeline"
	"duygu.io/sentiment/redis"
	"duygu.io/sentiment/rmq"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"time"
)

type Config struct {
	RedisDB          int    `envconfig:"DUYGU_REDIS_DB" default:"0"`
	ResultTTLSeconds int    `envconfig:"DUYGU_RESULT_TTL_SECONDS" default:"86400"`
	StatsKey         string `envconfig:"DUYGU_STATS_KEY" default:"duygu:stats"`
}

type Worker struct {
	config    Config
	redis     redisTransactions
	rmq       rmqTransactions
	fdlLogger *zerolog.Logger
	ppln      pipeline.Pipeline
}

func New(ppln pipeline.Pipeline) (*Worker, error) {
	fdlLogger := logger.NewLogger("Worker")

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fdlLogger.Error().Err(err).Msg("Could not read config")
		return nil, err
	}

	worker := Worker{
		config:    config,
		fdlLogger: &fdlLogger,
		ppln:      ppln,
	}
	if err := worker.refreshRMQClient(); err != nil {
		fdlLogger.Error().Err(err).Msg("Could not create RMQ client")
		return nil, err
	}
	if err := worker.refreshRedisClient(); err != nil {
		fdlLogger.Error().Err(err).Msg("Could not create Redis client")
		worker.rmq.close()
		return nil, err
	}
	return &worker, nil
}

// StartWorker handles deliveries until ctx is done or the RMQ connection breaks and cannot be restored.
func (worker *Worker) StartWorker(ctx context.Context) error {
	defer worker.Close()
	for {
		select {
		case <-ctx.Done():
			worker.fdlLogger.Info().Msg("Stopping worker")
			return nil
		case delivery, ok := <-worker.rmq.getDeliveriesCh():
			if ok {
				go worker.processMessage(&delivery)
				continue
			}
			worker.fdlLogger.Error().Msg("Deliveries channel closed, trying to refresh RMQ client")
			if err := worker.refreshRMQClient(); err != nil {
				return fmt.Errorf(
					"rmq deliveries channel has been closed and refresh returned error: %w",
					err,
				)
			}
		case rmqErr := <-worker.rmq.getRespChanErrorsCh():
			if rmqErr == nil {
				continue
			}
			worker.fdlLogger.Err(rmqErr).Msg("Response connection received error, trying to refresh RMQ client")
			if err := worker.refreshRMQClient(); err != nil {
				return fmt.Errorf("response connection received error and refresh failed with: %w", err)
			}
		case rmqErr := <-worker.rmq.getReqChanErrorsCh():
			if rmqErr == nil {
				continue
			}
			worker.fdlLogger.Err(rmqErr).Msg("Request connection received error, trying to refresh RMQ client")
			if err := worker.refreshRMQClient(); err != nil {
				return fmt.Errorf("request connection received error and refresh failed with: %w", err)
			}
		}
	}
}

func (worker *Worker) Close() {
	worker.redis.close()
	worker.rmq.close()
}

func (worker *Worker) refreshRedisClient() error {
	worker.fdlLogger.Info().Msg("Refreshing Redis client")
	if oldClient := worker.redis; oldClient != nil {
		defer oldClient.close()
	}
	client, err := redis.NewClient(redis.DB(worker.config.RedisDB))
	if err != nil {
		worker.fdlLogger.Err(err).Msg("Failed to refresh Redis client")
		return err
	}
	worker.redis = &redisClientWrapper{
		client:    &client,
		resultTTL: time.Duration(worker.config.ResultTTLSeconds) * time.Second,
		statsKey:  worker.config.StatsKey,
	}
	worker.fdlLogger.Info().Msg("Refreshed Redis client")
	return nil
}

func (worker *Worker) refreshRMQClient() error {
	worker.fdlLogger.Info().Msg("Refreshing RMQ client")
	if oldClient := worker.rmq; oldClient != nil {
		defer oldClient.close()
	}
	rmqClient, err := rmq.NewClient()
	if err != nil {
		worker.fdlLogger.Err(err).Msg("Failed to refresh RMQ client")
		return err
	}
	worker.rmq = &rmqClientWrapper{rmqClient}
	worker.fdlLogger.Info().Msg("Refreshed RMQ client")
	return nil
}
