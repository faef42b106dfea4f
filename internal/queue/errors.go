package queue

import "errors"

var (
	ErrConnecting       = errors.New("error connecting to broker")
	ErrOpeningChannel   = errors.New("error opening channel")
	ErrDeclaringQueue   = errors.New("error declaring queue")
	ErrSettingQos       = errors.New("error setting prefetch")
	ErrConsuming        = errors.New("error starting consumer")
	ErrDeliveriesClosed = errors.New("delivery stream closed")
	ErrEncodingMessage  = errors.New("error encoding message")
	ErrPublishing       = errors.New("error publishing message")
	ErrPublisherClosed  = errors.New("publisher is closed")
)
