package pubsub

import (
	"context"
	"encoding/json"
)

const (
	EventBulkCompleted = "bulkCompleted" // EventBulkCompleted bulk verification finished event
)

// Event defines the payload
type Event interface {
	Marshal() (msg Message, err error)
	Unmarshal(msg Message) error
}

// Message is the payload received in a pubsub subscriber. The input for callback functions
type Message []byte

// BulkCompletedEvent is published when a bulk verification job reaches COMPLETED.
type BulkCompletedEvent struct {
	BulkID      string `json:"bulkID"`
	ServiceMode string `json:"serviceMode"`
	Records     int    `json:"records"`
}

// Marshal marshals the event into a pubsub.Message
func (ev *BulkCompletedEvent) Marshal() (msg Message, err error) {
	return json.Marshal(ev)
}

// Unmarshal creates an event from that message
func (ev *BulkCompletedEvent) Unmarshal(msg Message) error {
	return json.Unmarshal(msg, &ev)
}

// Publisher sends topics to the pubsub
type Publisher interface {
	Publish(ctx context.Context, topic string, payload Event) error
}

// EventHandler is the type that functions that handle an event must comply.
type EventHandler func(context.Context, Message) error

// Subscriber subscribes to the pubsub topics
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, callback EventHandler)
}

// Client is formed by the publisher and subscriber
type Client interface {
	Publisher
	Subscriber
}
