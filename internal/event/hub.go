package event

import (
	"github.com/leandro-lugaresi/hub"
)

type Hub = hub.Hub
type Data = hub.Fields
type Message = hub.Message
type Subscription = hub.Subscription

var sharedHub = NewHub()

// NewHub returns a new event hub.
func NewHub() *Hub {
	return hub.New()
}

// SharedHub returns the process wide event hub.
func SharedHub() *Hub {
	return sharedHub
}

// Publish sends an event to all subscribers of its topic.
func Publish(event string, data Data) {
	SharedHub().Publish(Message{
		Name:   event,
		Fields: data,
	})
}

// Subscribe returns a buffered subscription for the given topics, e.g. "face.*".
func Subscribe(topics ...string) Subscription {
	return SharedHub().Subscribe(100, topics...)
}

// Unsubscribe closes a subscription.
func Unsubscribe(s Subscription) {
	SharedHub().Unsubscribe(s)
}
