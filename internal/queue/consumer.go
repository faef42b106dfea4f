// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/metrics"
	"github.com/MKhiriev/go-realm/internal/utils"
)

// Acknowledgement outcomes of a single delivery.
const (
	OutcomeAck    = "ack"
	OutcomeNack   = "nack"
	OutcomeReject = "reject"
)

// prefetchCount limits the broker to one unacknowledged delivery per consumer.
const prefetchCount = 1

// maxLoggedBody caps how much of a rejected message body is logged.
const maxLoggedBody = 100

// Consumer is a long-lived background worker that consumes one durable
// queue with manual acknowledgement and dispatches each message to a
// [HandlerFunc].
//
// Per delivery:
//   - a body that does not decode into T, or whose Validate fails, is
//     rejected without requeue;
//   - a handler error is negatively acknowledged without requeue;
//   - otherwise the delivery is acknowledged.
//
// Connection failures and a closed delivery stream are logged, followed by a
// fixed reconnect delay; Run retries until its context is cancelled.
type Consumer[T Message] struct {
	url       string
	queueName string
	dial      Dialer
	handler   HandlerFunc[T]

	startupDelay   time.Duration
	reconnectDelay time.Duration
	handlerTimeout time.Duration

	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewConsumer builds a Consumer of queueName that dispatches decoded messages
// to handler. Delays and the handler timeout are taken from cfg.
func NewConsumer[T Message](cfg config.Queue, queueName string, handler HandlerFunc[T], logger *logger.Logger) *Consumer[T] {
	return &Consumer[T]{
		url:            cfg.URL,
		queueName:      queueName,
		dial:           DialAMQP,
		handler:        handler,
		startupDelay:   cfg.StartupDelay,
		reconnectDelay: cfg.ReconnectDelay,
		handlerTimeout: cfg.HandlerTimeout,
		ids:            utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer[T]) Run(ctx context.Context) {
	log := c.logger.With().Str("func", "Consumer.Run").Str("queue", c.queueName).Logger()

	if !sleep(ctx, c.startupDelay) {
		return
	}

	for {
		err := c.consume(ctx)
		if ctx.Err() != nil {
			log.Info().Msg("consumer stopped")
			return
		}

		log.Err(err).Dur("retry_in", c.reconnectDelay).Msg("consumer disconnected, reconnecting")
		metrics.ConsumerReconnectsTotal.WithLabelValues(c.queueName).Inc()

		if !sleep(ctx, c.reconnectDelay) {
			log.Info().Msg("consumer stopped")
			return
		}
	}
}

// consume runs one connection lifetime. It returns when the connection or
// the delivery stream fails, or when ctx is cancelled.
func (c *Consumer[T]) consume(ctx context.Context) error {
	conn, err := c.dial(c.url)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnecting, err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpeningChannel, err)
	}
	defer ch.Close()

	if err = declareQueue(ch, c.queueName); err != nil {
		return fmt.Errorf("%w: %w", ErrDeclaringQueue, err)
	}
	if err = ch.Qos(prefetchCount, 0, false); err != nil {
		return fmt.Errorf("%w: %w", ErrSettingQos, err)
	}

	deliveries, err := ch.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConsuming, err)
	}

	c.logger.Info().Str("queue", c.queueName).Msg("waiting for messages")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.handle(ctx, delivery)
		}
	}
}

// handle decodes, dispatches and acknowledges one delivery and returns the
// acknowledgement outcome.
//
// The handler context survives cancellation of ctx, so a message that is in
// flight during shutdown still completes within the handler timeout.
func (c *Consumer[T]) handle(ctx context.Context, delivery amqp.Delivery) string {
	start := time.Now()

	traceID := c.traceID(delivery)
	msgCtx, log := c.logger.WithTraceID(ctx, traceID)
	msgCtx = utils.WithTraceID(msgCtx, traceID)
	entry := log.With().
		Str("queue", c.queueName).
		Uint64("delivery_tag", delivery.DeliveryTag).
		Str("message_id", delivery.MessageId).
		Logger()

	outcome := c.dispatch(msgCtx, delivery, &entry)

	var err error
	switch outcome {
	case OutcomeAck:
		err = delivery.Ack(false)
	case OutcomeNack:
		err = delivery.Nack(false, false)
	case OutcomeReject:
		err = delivery.Reject(false)
	}
	if err != nil {
		entry.Err(err).Str("outcome", outcome).Msg("failed to acknowledge delivery")
	}

	metrics.DeliveriesTotal.WithLabelValues(c.queueName, outcome).Inc()
	metrics.DeliveryProcessingDuration.WithLabelValues(c.queueName, outcome).Observe(time.Since(start).Seconds())

	return outcome
}

func (c *Consumer[T]) dispatch(ctx context.Context, delivery amqp.Delivery, log *zerolog.Logger) string {
	var message T
	if err := json.Unmarshal(delivery.Body, &message); err != nil {
		log.Err(err).Bytes("body", bodyPrefix(delivery.Body)).Int("body_size", len(delivery.Body)).Msg("undecodable message, rejecting")
		return OutcomeReject
	}
	if err := message.Validate(); err != nil {
		log.Err(err).Bytes("body", bodyPrefix(delivery.Body)).Int("body_size", len(delivery.Body)).Msg("invalid message, rejecting")
		return OutcomeReject
	}

	handlerCtx := context.WithoutCancel(ctx)
	if c.handlerTimeout > 0 {
		var cancel context.CancelFunc
		handlerCtx, cancel = context.WithTimeout(handlerCtx, c.handlerTimeout)
		defer cancel()
	}

	if err := c.handler(handlerCtx, message); err != nil {
		log.Err(err).Msg("handler failed, discarding message")
		return OutcomeNack
	}

	log.Debug().Msg("message processed")
	return OutcomeAck
}

func bodyPrefix(body []byte) []byte {
	if len(body) > maxLoggedBody {
		return body[:maxLoggedBody]
	}
	return body
}

// traceID returns the producer's trace ID, falling back to the message ID
// and then to a fresh identifier.
func (c *Consumer[T]) traceID(delivery amqp.Delivery) string {
	if traceID, ok := delivery.Headers[TraceIDHeader].(string); ok && traceID != "" {
		return traceID
	}
	if delivery.MessageId != "" {
		return delivery.MessageId
	}

	return c.ids.Generate()
}

// sleep waits for d or until ctx is done and reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
