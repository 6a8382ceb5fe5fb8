package worker

import (
	"duygu.io/sentiment/pipeline"
	"errors"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

type failingMethod struct {
	fail bool
}

type withValue struct {
	fail          bool
	returnedValue interface{}
}

type pipelineMock struct {
	ppln   pipeline.Pipeline
	config pipelineMockConfig
	calls  pipelineCall
}

type pipelineMockConfig struct {
	fail   bool
	result string
}

type pipelineCall struct {
	pipeline bool
}

type redisMock struct {
	config redisMockConfig
	calls  redisMockCalls
	stats  Stats
}

type redisMockConfig struct {
	getResult   withValue
	saveResult  failingMethod
	updateStats failingMethod
}

type redisMockCalls struct {
	getResult   bool
	saveResult  bool
	updateStats bool
}

type rmqMock struct {
	config rmqMockConfig
	calls  rmqMockCalls
	sent   string
}

type rmqMockConfig struct {
	sendResult          failingMethod
	acknowledgeDelivery failingMethod
}

type rmqMockCalls struct {
	sendResult          bool
	acknowledgeDelivery bool
	rejectDelivery      bool
}

func (mock *rmqMock) close() {}

func (mock *redisMock) close() {}

const defaultPipelineResult = `{"id":"1","text":"Çok iyi","label":"Pozitif","score":1,"negated":false}`

func getPipelineMock(config pipelineMockConfig) *pipelineMock {
	mock := pipelineMock{config: config}
	if mock.config.result == "" {
		mock.config.result = defaultPipelineResult
	}
	if config.fail {
		mock.ppln = func(request pipeline.Request) <-chan string {
			mock.calls.pipeline = true
			ch := make(chan string)
			close(ch)
			return ch
		}
	} else {
		mock.ppln = func(request pipeline.Request) <-chan string {
			mock.calls.pipeline = true
			ch := make(chan string, 1)
			ch <- mock.config.result
			close(ch)
			return ch
		}
	}
	return &mock
}

func (mock *redisMock) getResult(task *Task) (string, bool, error) {
	mock.calls.getResult = true
	if mock.config.getResult.fail {
		return "", false, errors.New("failed to read cached result")
	}
	switch value := mock.config.getResult.returnedValue.(type) {
	case string:
		return value, true, nil
	default:
		return "", false, nil
	}
}

func (mock *redisMock) saveResult(task *Task, result string) error {
	mock.calls.saveResult = true
	if mock.config.saveResult.fail {
		return errors.New("failed to cache result")
	}
	return nil
}

func (mock *redisMock) updateStats(task *Task, response pipeline.Response, cached bool) error {
	mock.calls.updateStats = true
	if mock.config.updateStats.fail {
		return errors.New("failed to obtain lock")
	}
	mock.stats.add(response, cached)
	return nil
}

func (mock *rmqMock) rejectDelivery(delivery *amqp.Delivery, fdlLogger *zerolog.Logger) {
	mock.calls.rejectDelivery = true
}

func (mock *rmqMock) getDeliveriesCh() <-chan amqp.Delivery {
	return nil
}

func (mock *rmqMock) getReqChanErrorsCh() <-chan *amqp.Error {
	return nil
}

func (mock *rmqMock) getRespChanErrorsCh() <-chan *amqp.Error {
	return nil
}

func (mock *rmqMock) sendResult(task *Task, result string) error {
	mock.calls.sendResult = true
	mock.sent = result
	if mock.config.sendResult.fail {
		return errors.New("failed to publish result")
	}
	return nil
}

func (mock *rmqMock) acknowledgeDelivery(delivery *amqp.Delivery) error {
	mock.calls.acknowledgeDelivery = true
	if mock.config.acknowledgeDelivery.fail {
		return errors.New("failed to acknowledge delivery")
	}
	return nil
}
