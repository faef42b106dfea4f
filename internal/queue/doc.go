// Package queue carries events between the realm services over an AMQP 0-9-1
// broker.
//
// A [Publisher] serializes payloads to JSON and publishes them as persistent
// messages on durable queues. A [Consumer] is a long-lived background worker
// that decodes deliveries into a typed message, hands them to a
// [HandlerFunc] and acknowledges each one manually. Delivery is
// at-least-once; handlers must be idempotent.
package queue
