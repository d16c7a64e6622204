// Package pubsub implements a small generic broadcast primitive used
// for the supervisor's models and msgs observable streams. A Topic
// remembers the most recently published value and replays it to every
// newly joining subscriber, so a presentation layer that attaches
// after the supervisor has been running for a while still sees the
// current model rather than waiting for the next change.
package pubsub

import "sync"

// Topic broadcasts values of type T to any number of subscribers. The
// zero value is not usable; use New. A Topic is safe for concurrent
// use by multiple goroutines — the ticker, each effect worker, and
// whatever presentation layer subscribes all touch it independently.
type Topic[T any] struct {
	mu     sync.Mutex
	subs   map[int]func(T)
	nextID int
	latest *T
}

// New constructs an empty Topic.
func New[T any]() *Topic[T] {
	return &Topic[T]{subs: make(map[int]func(T))}
}

// Subscribe registers observer to receive every value published from
// now on. If a value has already been published, observer is handed
// that latest value immediately (replay-1), before anything new.
// Subscribe returns an unsubscribe function.
func (t *Topic[T]) Subscribe(observer func(T)) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = observer
	var backlog *T
	if t.latest != nil {
		v := *t.latest
		backlog = &v
	}
	t.mu.Unlock()

	if backlog != nil {
		observer(*backlog)
	}

	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Publish records value as the latest and delivers it to every
// current subscriber.
func (t *Topic[T]) Publish(value T) {
	t.mu.Lock()
	v := value
	t.latest = &v
	observers := make([]func(T), 0, len(t.subs))
	for _, obs := range t.subs {
		observers = append(observers, obs)
	}
	t.mu.Unlock()

	for _, obs := range observers {
		obs(value)
	}
}

// Enqueue subscribes to the topic and forwards every value onto ch,
// the way a consumer wires a Topic into its own processing loop. The
// caller must drain ch or risk blocking publishers; size ch generously
// or pair it with a select-based drop policy.
func (t *Topic[T]) Enqueue(ch chan<- T) (unsubscribe func()) {
	return t.Subscribe(func(v T) {
		ch <- v
	})
}
