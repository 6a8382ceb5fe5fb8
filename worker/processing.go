package worker

import (
	"duygu.io/sentiment/pipeline"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"strings"
)

var errEmptyText = errors.New("message has no text")

type Task struct {
	delivery  *amqp.Delivery
	request   pipeline.Request
	resultKey string
	fdlLogger *zerolog.Logger
}

func (worker *Worker) processMessage(delivery *amqp.Delivery) {
	rejectLogger := worker.fdlLogger.With().Str("message_id", delivery.MessageId).Logger()
	task, err := worker.createTask(delivery)
	if err != nil {
		worker.fdlLogger.Err(err).
			Str("message_id", delivery.MessageId).
			Str("body", string(delivery.Body)).
			Msg("Failed to create task for delivery")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	result, err := worker.processTask(task)
	if err != nil {
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.sendResult(task, result); err != nil {
		task.fdlLogger.Err(err).Msg("Got error while sending message to result queue")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.acknowledgeDelivery(delivery); err != nil {
		task.fdlLogger.Err(err).Msg("Failed to acknowledge delivery")
	}
	task.fdlLogger.Info().Msg("Finished processing RMQ message")
}

func (worker *Worker) createTask(delivery *amqp.Delivery) (*Task, error) {
	var request pipeline.Request
	if err := json.Unmarshal(delivery.Body, &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message, got error %w", err)
	}
	if strings.TrimSpace(request.Text) == "" {
		return nil, errEmptyText
	}
	if request.Tid == "" {
		request.Tid = delivery.MessageId
	}
	taskLogger := worker.fdlLogger.With().Str("tid", request.Tid).Logger()
	return &Task{
		delivery:  delivery,
		request:   request,
		resultKey: getResultKey(request.Text),
		fdlLogger: &taskLogger,
	}, nil
}

// processTask returns the JSON result for the task, from the cache when possible.
// Cache and statistics failures are logged but never fail the task.
func (worker *Worker) processTask(task *Task) (string, error) {
	response, cached := worker.cachedResponse(task)
	if !cached {
		var err error
		if response, err = worker.runPipeline(task); err != nil {
			task.fdlLogger.Err(err).Msg("Got error while running pipeline")
			return "", err
		}
	}

	buf, err := json.Marshal(response)
	if err != nil {
		task.fdlLogger.Err(err).Msg("Failed to marshal result")
		return "", err
	}
	result := string(buf)

	if !cached && !response.Failed() {
		if err = worker.redis.saveResult(task, result); err != nil {
			task.fdlLogger.Err(err).Msg("Failed to cache result")
		}
	}
	if err = worker.redis.updateStats(task, response, cached); err != nil {
		task.fdlLogger.Err(err).Msg("Failed to update statistics")
	}
	return result, nil
}

func (worker *Worker) cachedResponse(task *Task) (pipeline.Response, bool) {
	value, found, err := worker.redis.getResult(task)
	if err != nil {
		task.fdlLogger.Err(err).Msg("Could not read cached result, classifying again")
		return pipeline.Response{}, false
	}
	if !found {
		return pipeline.Response{}, false
	}
	var response pipeline.Response
	if err = json.Unmarshal([]byte(value), &response); err != nil {
		task.fdlLogger.Err(err).Msg("Cached result is malformed, classifying again")
		return pipeline.Response{}, false
	}
	task.fdlLogger.Debug().Msg("Using cached result")
	response.ID = task.request.Tid
	response.Text = task.request.Text
	return response, true
}

func (worker *Worker) runPipeline(task *Task) (response pipeline.Response, err error) {
	task.fdlLogger.Info().Msg("Processing message from RMQ")
	result, ok := <-worker.ppln(task.request)
	if !ok {
		task.fdlLogger.Error().Msg("Pipeline channel was closed before returning anything")
		return response, errors.New("pipeline channel was closed before returning anything")
	}
	if err = json.Unmarshal([]byte(result), &response); err != nil {
		return response, fmt.Errorf("malformed pipeline result: %w", err)
	}
	return response, nil
}
