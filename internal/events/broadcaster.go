package events

import (
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Listener receives the events its viewer may see, in publish order
type Listener interface {
	Handle(Event)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(Event)

func (f ListenerFunc) Handle(ev Event) { f(ev) }

type subscription struct {
	viewer   Viewer
	listener Listener
}

// Broadcaster fans engine events out to presentation listeners
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[int]subscription
	next int
	log  zerolog.Logger
}

// NewBroadcaster creates a broadcaster with no listeners
func NewBroadcaster(log zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		subs: make(map[int]subscription),
		log:  log,
	}
}

// Subscribe registers a listener for a viewer and returns its cancel func
func (b *Broadcaster) Subscribe(v Viewer, l Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.subs[id] = subscription{viewer: v, listener: l}
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Count returns the number of listeners
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers an event to every listener whose viewer may see it.
// Listeners run synchronously in subscription order, outside the lock.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.RLock()
	subs := maps.Clone(b.subs)
	b.mu.RUnlock()

	delivered := 0
	for _, id := range slices.Sorted(maps.Keys(subs)) {
		sub := subs[id]
		if !ev.Audience.Visible(sub.viewer) {
			continue
		}
		b.deliver(sub.listener, ev)
		delivered++
	}
	b.log.Trace().Str("event", string(ev.Kind)).Int("listeners", delivered).Msg("event published")
}

func (b *Broadcaster) deliver(l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Str("event", string(ev.Kind)).Msg("listener panicked")
		}
	}()
	l.Handle(ev)
}

// Recorder keeps every event it sees; safe for concurrent use
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Handle(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// OfKind returns the recorded events of one kind
func (r *Recorder) OfKind(kind Kind) []Event {
	var out []Event
	for _, ev := range r.Events() {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}
