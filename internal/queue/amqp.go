package queue

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// TraceIDHeader carries the trace ID of the request that produced a
	// message, so consumer logs can be correlated with it.
	TraceIDHeader = "x-trace-id"

	contentTypeJSON = "application/json"
)

type amqpConnection struct {
	*amqp.Connection
}

// DialAMQP is the production [Dialer].
func DialAMQP(url string) (Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	return &amqpConnection{conn}, nil
}

func (c *amqpConnection) Channel() (Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}

	return ch, nil
}

// declareQueue declares a durable, non-exclusive queue. Declaring an existing
// queue with the same arguments is a no-op on the broker.
func declareQueue(ch Channel, name string) error {
	_, err := ch.QueueDeclare(name, true, false, false, false, nil)
	return err
}
