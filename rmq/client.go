package rmq

import (
	"duygu.io/sentiment/logger"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

type Config struct {
	Host                    string `envconfig:"DUYGU_RMQ_HOST" required:"true"`
	Port                    string `envconfig:"DUYGU_RMQ_PORT" default:"5672"`
	Username                string `envconfig:"DUYGU_RMQ_USERNAME" required:"true"`
	Password                string `envconfig:"DUYGU_RMQ_PASSWORD" required:"true"`
	Exchange                string `envconfig:"DUYGU_RMQ_EXCHANGE" default:"duygu"`
	MaxParallelRequestCount int    `envconfig:"DUYGU_MQ_MAX_PARALLEL_REQUESTS" default:"5"`
	RequestQueue            string `envconfig:"DUYGU_RMQ_REQUEST_QUEUE" default:"duygu.requests"`
	ResultQueue             string `envconfig:"DUYGU_RMQ_RESULT_QUEUE" default:"duygu.results"`
}

type Client struct {
	Deliveries     <-chan amqp.Delivery
	ReqChanErrors  <-chan *amqp.Error
	RespChanErrors <-chan *amqp.Error
	config         Config
	reqConn        *amqp.Connection
	respConn       *amqp.Connection
	respChannel    *amqp.Channel
	fdlLogger      *zerolog.Logger
}

// NewClient connects twice: one connection consumes requests, the other publishes results.
// Both queues are declared durable and bound to the exchange under their own names.
func NewClient() (*Client, error) {
	fdlLogger := logger.NewLogger("RMQ client")
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fdlLogger.Error().Err(err).Msg("Could not read env config")
		return nil, err
	}

	url := getURL(config)
	respConn, respChannel, err := setup(url)
	if err != nil {
		return nil, fmt.Errorf("failed connection: %w", err)
	}
	reqConn, reqChannel, err := setup(url)
	if err != nil {
		_ = respConn.Close()
		return nil, fmt.Errorf("failed connection: %w", err)
	}

	closeAll := func() {
		_ = reqConn.Close()
		_ = respConn.Close()
	}
	if err = declare(reqChannel, config); err != nil {
		closeAll()
		return nil, err
	}
	if err = reqChannel.Qos(config.MaxParallelRequestCount, 0, false); err != nil {
		closeAll()
		return nil, fmt.Errorf("qos: %w", err)
	}

	deliveries, err := reqChannel.Consume(
		config.RequestQueue,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("consume deliveries: %w", err)
	}
	reqChanErrors := reqChannel.NotifyClose(make(chan *amqp.Error))
	respChanErrors := respChannel.NotifyClose(make(chan *amqp.Error))

	fdlLogger.Info().
		Str("request_queue", config.RequestQueue).
		Str("result_queue", config.ResultQueue).
		Msg("Connected to RMQ")

	return &Client{
		Deliveries:     deliveries,
		ReqChanErrors:  reqChanErrors,
		RespChanErrors: respChanErrors,
		config:         config,
		reqConn:        reqConn,
		respConn:       respConn,
		respChannel:    respChannel,
		fdlLogger:      &fdlLogger,
	}, nil
}

func (c *Client) SendResult(msg amqp.Publishing) error {
	return c.respChannel.Publish(
		c.config.Exchange,
		c.config.ResultQueue,
		false,
		false,
		msg)
}

func (c *Client) Close() {
	_ = c.reqConn.Close()
	_ = c.respConn.Close()
}

func declare(ch *amqp.Channel, config Config) error {
	if err := ch.ExchangeDeclare(config.Exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", config.Exchange, err)
	}
	for _, queue := range []string{config.RequestQueue, config.ResultQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		if err := ch.QueueBind(queue, queue, config.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", queue, err)
		}
	}
	return nil
}

func getURL(config Config) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s", config.Username, config.Password, config.Host, config.Port)
}

func setup(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}
