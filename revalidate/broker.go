// Package revalidate tells dependent views that the memo table changed.
package revalidate

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Kind string

const (
	Saved   Kind = "saved"
	Deleted Kind = "deleted"
)

type Event struct {
	Date string    `json:"date"`
	Kind Kind      `json:"kind"`
	At   time.Time `json:"at"`
}

// Broker fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the event.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	buffer int
	log    logrus.FieldLogger
}

type Option func(*Broker)

func WithBuffer(n int) Option {
	return func(b *Broker) {
		b.buffer = n
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Broker) {
		b.log = l
	}
}

func NewBroker(opts ...Option) *Broker {
	b := &Broker{
		subs:   map[int]chan Event{},
		buffer: 8,
		log:    logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Broker) Publish(ctx context.Context, ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.log.Warnf("Dropping %s event for %s on slow subscriber %d", ev.Kind, ev.Date, id)
		}
	}
	b.log.Debugf("Published %s event for %s to %d subscribers", ev.Kind, ev.Date, len(b.subs))
}

// Subscribe returns a channel of future events and a func that closes it.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
