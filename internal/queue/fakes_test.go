package queue

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// fakeAcknowledger records acknowledgements by delivery tag.
type fakeAcknowledger struct {
	mu      sync.Mutex
	acked   []uint64
	nacked  []uint64
	rejects []uint64
	requeue []bool
}

func (f *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nacked = append(f.nacked, tag)
	f.requeue = append(f.requeue, requeue)
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejects = append(f.rejects, tag)
	f.requeue = append(f.requeue, requeue)
	return nil
}

func (f *fakeAcknowledger) snapshot() (acked, nacked, rejected []uint64, requeue []bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint64(nil), f.acked...),
		append([]uint64(nil), f.nacked...),
		append([]uint64(nil), f.rejects...),
		append([]bool(nil), f.requeue...)
}

// fakeChannel is an in-memory Channel. Deliveries pushed into deliveries are
// handed to the consumer; published messages are recorded.
type fakeChannel struct {
	mu         sync.Mutex
	declared   []string
	durable    []bool
	prefetch   int
	autoAck    bool
	published  []amqp.Publishing
	routingKey []string
	closed     bool

	deliveries chan amqp.Delivery

	declareErr error
	publishErr error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{deliveries: make(chan amqp.Delivery)}
}

func (f *fakeChannel) QueueDeclare(name string, durable, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.declareErr != nil {
		return amqp.Queue{}, f.declareErr
	}
	f.declared = append(f.declared, name)
	f.durable = append(f.durable, durable)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) Qos(prefetchCount, _ int, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefetch = prefetchCount
	return nil
}

func (f *fakeChannel) Consume(_, _ string, autoAck, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.autoAck = autoAck
	return f.deliveries, nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, msg)
	f.routingKey = append(f.routingKey, key)
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type fakeConnection struct {
	ch     Channel
	closed bool
}

func (f *fakeConnection) Channel() (Channel, error) { return f.ch, nil }

func (f *fakeConnection) Close() error {
	f.closed = true
	return nil
}

// fakeDialer hands out connections from conns in order and fails with the
// matching entry of errs when it is non-nil.
type fakeDialer struct {
	mu    sync.Mutex
	calls int
	conns []Connection
	errs  []error
}

func (f *fakeDialer) dial(string) (Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.conns) {
		return f.conns[i], nil
	}
	return f.conns[len(f.conns)-1], nil
}

func (f *fakeDialer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
