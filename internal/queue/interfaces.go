package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/queue_mock.go -package=mock

// Publisher publishes JSON encoded payloads on named durable queues.
type Publisher interface {
	Publish(ctx context.Context, queueName string, payload any) error
	Close() error
}

// Message is a decoded delivery body. Validate reports whether the decoded
// value carries everything a handler needs; a failure rejects the delivery.
type Message interface {
	Validate() error
}

// HandlerFunc processes one decoded message. A non-nil error negatively
// acknowledges the delivery without requeueing it.
type HandlerFunc[T Message] func(ctx context.Context, message T) error

// Dialer opens a broker connection.
type Dialer func(url string) (Connection, error)

// Connection is the subset of *amqp.Connection used by this package.
type Connection interface {
	Channel() (Channel, error)
	Close() error
}

// Channel is the subset of *amqp.Channel used by this package.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}
