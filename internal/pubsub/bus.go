// Package pubsub is the process-local event bus feeding live GraphQL
// subscriptions. Mutations publish onto named topics; each subscriber holds
// a bounded channel and a predicate deciding which events it receives.
//
// Delivery is at-most-once per connected subscriber with no persistence or
// replay; multiple server instances hold independent dispatch tables.
package pubsub

import (
	"sync"
	"time"
)

// Topic is a named channel mutations publish to. The set is closed; only
// the constants below are valid.
type Topic string

const (
	TopicMoleculeCreated     Topic = "MOLECULE_CREATED"
	TopicMoleculeUpdated     Topic = "MOLECULE_UPDATED"
	TopicMoleculeDeleted     Topic = "MOLECULE_DELETED"
	TopicProjectCreated      Topic = "PROJECT_CREATED"
	TopicProjectUpdated      Topic = "PROJECT_UPDATED"
	TopicTrialCreated        Topic = "TRIAL_CREATED"
	TopicTrialUpdated        Topic = "TRIAL_UPDATED"
	TopicPaperCreated        Topic = "PAPER_CREATED"
	TopicSafetyEventCreated  Topic = "SAFETY_EVENT_CREATED"
	TopicPredictionCompleted Topic = "PREDICTION_COMPLETED"
	TopicInsightCreated      Topic = "INSIGHT_CREATED"
)

// Event is one published occurrence.
type Event struct {
	Topic   Topic
	Payload any
	At      time.Time
}

// Predicate decides whether an event should be delivered to one subscriber.
// A nil predicate accepts everything.
type Predicate func(Event) bool

// DefaultBuffer is the per-subscriber channel capacity used when the bus is
// constructed with a non-positive buffer size.
const DefaultBuffer = 16

// Bus fans published events out to live subscribers. Construct one per
// process and inject it; it is safe for concurrent use.
type Bus struct {
	buffer int

	// onPublish and onDrop, when set, feed metrics.
	onPublish func(topic string)
	onDrop    func(topic string)
	onChange  func(delta int)

	mu     sync.RWMutex
	nextID uint64
	subs   map[Topic]map[uint64]*Subscription
}

// Option configures a Bus.
type Option func(*Bus)

// WithHooks registers observability callbacks: published events, dropped
// events, and subscriber count changes.
func WithHooks(onPublish, onDrop func(topic string), onChange func(delta int)) Option {
	return func(b *Bus) {
		b.onPublish = onPublish
		b.onDrop = onDrop
		b.onChange = onChange
	}
}

// New creates a bus whose subscribers buffer up to buffer events each.
func New(buffer int, opts ...Option) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	b := &Bus{
		buffer: buffer,
		subs:   make(map[Topic]map[uint64]*Subscription),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscription is one live subscriber's attachment to the bus. Events
// matching its predicate arrive on C until Unsubscribe closes it.
type Subscription struct {
	C <-chan Event

	bus    *Bus
	id     uint64
	topics []Topic
	pred   Predicate
	ch     chan Event
	once   sync.Once
}

// Subscribe attaches a new subscriber to the given topics. pred filters
// deliveries; nil delivers every event on those topics.
func (b *Bus) Subscribe(pred Predicate, topics ...Topic) *Subscription {
	ch := make(chan Event, b.buffer)
	sub := &Subscription{
		C:      ch,
		bus:    b,
		topics: topics,
		pred:   pred,
		ch:     ch,
	}

	b.mu.Lock()
	b.nextID++
	sub.id = b.nextID
	for _, t := range topics {
		if b.subs[t] == nil {
			b.subs[t] = make(map[uint64]*Subscription)
		}
		b.subs[t][sub.id] = sub
	}
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange(1)
	}
	return sub
}

// Unsubscribe synchronously removes the subscriber from the dispatch table
// and closes its channel. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		for _, t := range s.topics {
			delete(s.bus.subs[t], s.id)
		}
		s.bus.mu.Unlock()
		close(s.ch)
		if s.bus.onChange != nil {
			s.bus.onChange(-1)
		}
	})
}

// Publish delivers payload to every current subscriber of topic whose
// predicate accepts it. It never blocks the caller: a subscriber whose
// buffer is full loses its oldest queued event to make room. A predicate
// that panics is treated as a non-match and cannot affect other
// subscribers.
func (b *Bus) Publish(topic Topic, payload any) {
	ev := Event{Topic: topic, Payload: payload, At: time.Now()}

	if b.onPublish != nil {
		b.onPublish(string(topic))
	}

	// Fan-out happens under the read lock so a concurrent Unsubscribe
	// (which closes the channel under the write lock) cannot interleave
	// with a send.
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs[topic] {
		if !accepts(sub.pred, ev) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			// Drop-oldest overflow policy for slow consumers.
			select {
			case <-sub.ch:
				if b.onDrop != nil {
					b.onDrop(string(topic))
				}
			default:
			}
			select {
			case sub.ch <- ev:
			default:
				if b.onDrop != nil {
					b.onDrop(string(topic))
				}
			}
		}
	}
}

func accepts(pred Predicate, ev Event) (ok bool) {
	if pred == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return pred(ev)
}
