package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/metrics"
	"github.com/MKhiriev/go-realm/internal/utils"
)

// amqpPublisher is the AMQP implementation of [Publisher].
//
// The broker connection is opened on the first Publish and dropped after any
// failure. A failure on a cached connection is retried once on a fresh dial. A broker that is down at startup
// therefore never blocks the service.
type amqpPublisher struct {
	url  string
	dial Dialer

	mu     sync.Mutex
	conn   Connection
	ch     Channel
	closed bool

	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewPublisher returns a [Publisher] for the broker at cfg.URL.
func NewPublisher(cfg config.Queue, logger *logger.Logger) Publisher {
	return newPublisher(cfg.URL, DialAMQP, logger)
}

func newPublisher(url string, dial Dialer, logger *logger.Logger) *amqpPublisher {
	return &amqpPublisher{
		url:    url,
		dial:   dial,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: logger,
	}
}

// Publish encodes payload as JSON and publishes it as a persistent message on
// the durable queue queueName, declaring the queue first.
func (p *amqpPublisher) Publish(ctx context.Context, queueName string, payload any) (err error) {
	log := logger.FromContext(ctx).With().
		Str("func", "amqpPublisher.Publish").
		Str("queue", queueName).
		Logger()

	defer func() {
		result := metrics.ResultOK
		if err != nil {
			result = metrics.ResultError
		}
		metrics.MessagesPublishedTotal.WithLabelValues(queueName, result).Inc()
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingMessage, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	cached := p.ch != nil
	ch, err := p.channel()
	if err != nil {
		log.Err(err).Msg("broker is unavailable")
		return err
	}

	msg := amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    p.ids.Generate(),
		Timestamp:    p.now().UTC(),
		Body:         body,
	}
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		msg.Headers = amqp.Table{TraceIDHeader: traceID}
	}

	err = p.send(ctx, ch, queueName, msg)
	if err != nil && cached {
		// the cached connection may have died with a broker restart
		log.Warn().Err(err).Msg("publish on cached connection failed, redialing")
		if ch, err = p.channel(); err != nil {
			log.Err(err).Msg("broker is unavailable")
			return err
		}
		err = p.send(ctx, ch, queueName, msg)
	}
	if err != nil {
		log.Err(err).Msg("failed to publish message")
		return err
	}

	log.Debug().Str("message_id", msg.MessageId).Msg("message published")
	return nil
}

// send declares queueName and publishes msg on ch. Any failure drops the
// connection. The caller must hold p.mu.
func (p *amqpPublisher) send(ctx context.Context, ch Channel, queueName string, msg amqp.Publishing) error {
	if err := declareQueue(ch, queueName); err != nil {
		p.reset()
		return fmt.Errorf("%w: %w", ErrDeclaringQueue, err)
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("%w: %w", ErrPublishing, err)
	}

	return nil
}

// channel returns the open channel, dialing the broker when there is none.
// The caller must hold p.mu.
func (p *amqpPublisher) channel() (Channel, error) {
	if p.closed {
		return nil, ErrPublisherClosed
	}
	if p.ch != nil {
		return p.ch, nil
	}

	conn, err := p.dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnecting, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpeningChannel, err)
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

// reset drops the current connection. The caller must hold p.mu.
func (p *amqpPublisher) reset() error {
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	p.conn, p.ch = nil, nil

	return errors.Join(errs...)
}

// Close releases the broker connection. Publishing after Close fails with
// [ErrPublisherClosed].
func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	return p.reset()
}
