package script

import (
	"context"
	"sync"
)

// Event is a script lifecycle notification.
type Event interface {
	// ScriptName returns the name of the script the event is about.
	ScriptName() string
}

// ScriptLoaded is published after a script has been registered.
type ScriptLoaded struct {
	Name   string
	Path   string
	LoadID string
}

// ScriptUnloaded is published after a script has been removed and its handle released.
type ScriptUnloaded struct {
	Name string
}

// ScriptLoadError is published when the interpreter rejects a script.
type ScriptLoadError struct {
	Name    string
	Message string
}

// ScriptName implements Event.
func (e ScriptLoaded) ScriptName() string { return e.Name }

// ScriptName implements Event.
func (e ScriptUnloaded) ScriptName() string { return e.Name }

// ScriptName implements Event.
func (e ScriptLoadError) ScriptName() string { return e.Name }

// Subscriber receives published events.
type Subscriber interface {
	Notify(ctx context.Context, event Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(ctx context.Context, event Event)

// Notify calls f.
func (f SubscriberFunc) Notify(ctx context.Context, event Event) {
	f(ctx, event)
}

// Bus fans events out to subscribers in subscription order.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewBus creates a bus with the given initial subscribers.
func NewBus(subscribers ...Subscriber) *Bus {
	return &Bus{subscribers: subscribers}
}

// Subscribe adds a subscriber.
func (b *Bus) Subscribe(s Subscriber) {
	if s == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, s)
}

// Publish delivers event synchronously to every subscriber.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, s := range subs {
		s.Notify(ctx, event)
	}
}
