package server

import "sync"

// Broadcaster fans snapshots out to subscribers. A subscriber that has not
// drained its previous snapshot misses the new one; only the latest state
// matters to a pose stream.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan Snapshot]struct{}
	last   Snapshot
	hasAny bool
}

// NewBroadcaster creates a broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Snapshot]struct{})}
}

// Subscribe returns a channel of snapshots and a function that ends the
// subscription. The latest snapshot, if any, is delivered first.
func (b *Broadcaster) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	if b.hasAny {
		ch <- b.last
	}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			close(ch)
			b.mu.Unlock()
		})
	}
}

// Publish delivers s to every subscriber that is ready for it.
func (b *Broadcaster) Publish(s Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = s
	b.hasAny = true
	for ch := range b.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Last returns the most recent snapshot.
func (b *Broadcaster) Last() (Snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.hasAny
}

// Subscribers returns the number of active subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
