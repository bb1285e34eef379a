package selkt

import (
	"fmt"

	"github.com/delaneyj/selkt/equality"
)

// Store holds one state value. Reading it through State inside a selector
// subscribes the selector; writing it through Set notifies every listener.
type Store[T any] struct {
	rt        *Runtime
	name      string
	state     T
	initial   T
	version   uint64
	tiers     [tierCount]*listenerSet
	destroyed bool

	// resolve turns a setter into the next state and reports whether
	// listeners should hear about it.
	resolve func(prev T, s Setter[T]) (T, bool)
}

// NewStore creates a store whose setters may mutate the state in place.
// Every Set notifies, whether or not the value changed.
func NewStore[T any](rt *Runtime, initial T, opts ...StoreOption) *Store[T] {
	s := newStore(rt, initial, opts)
	s.resolve = func(prev T, st Setter[T]) (T, bool) {
		next, _ := st.apply(prev)
		return next, true
	}
	return s
}

// NewImmutableStore creates a store that computes every new state with
// producer and stays silent when the result is identical to the old state.
func NewImmutableStore[T any](rt *Runtime, initial T, producer Producer[T], opts ...StoreOption) *Store[T] {
	s := newStore(rt, initial, opts)
	s.resolve = func(prev T, st Setter[T]) (T, bool) {
		next := producer.Produce(prev, st)
		return next, !equality.StrictEqual(next, prev)
	}
	return s
}

func newStore[T any](rt *Runtime, initial T, opts []StoreOption) *Store[T] {
	var cfg storeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.name == "" {
		cfg.name = rt.nextStoreName()
	}

	s := &Store[T]{
		rt:      rt,
		name:    cfg.name,
		state:   initial,
		initial: initial,
	}
	for i := range s.tiers {
		s.tiers[i] = newListenerSet()
	}
	return s
}

// Name labels the store in logs and metrics.
func (s *Store[T]) Name() string {
	return s.name
}

// Version counts the writes that reached listeners.
func (s *Store[T]) Version() uint64 {
	return s.version
}

// Initial is the state the store was created with.
func (s *Store[T]) Initial() T {
	return s.initial
}

// State returns the current state, recording the store into the active
// collection if there is one.
func (s *Store[T]) State() T {
	s.rt.track(s)
	return s.state
}

// Peek returns the current state without tracking.
func (s *Store[T]) Peek() T {
	return s.state
}

// Set applies setter, queues every listener of the store and drains unless a
// Flush is in charge.
func (s *Store[T]) Set(setter Setter[T]) {
	s.rt.checkOwner()
	s.mustBeLive()

	next, changed := s.resolve(s.state, setter)
	if !changed {
		return
	}
	s.state = next
	s.version++
	s.rt.cfg.hooks.storeSet(s.name, s.version)

	for _, tier := range s.tiers {
		for _, l := range tier.order {
			s.rt.enqueue(l)
		}
	}
	s.rt.Flush(nil)
}

// SetValue is Set(Value(v)).
func (s *Store[T]) SetValue(v T) {
	s.Set(Value(v))
}

func (s *Store[T]) Update(fn func(state T) T) {
	s.Set(Update(fn))
}

func (s *Store[T]) Mutate(fn func(state T)) {
	s.Set(Mutate(fn))
}

// Subscribe calls fn with the new state after every write.
func (s *Store[T]) Subscribe(fn func(state T)) Subscription {
	return s.SubscribeTier(TierSubscriptions, fn)
}

// SubscribeTier is Subscribe into a chosen tier.
func (s *Store[T]) SubscribeTier(tier Tier, fn func(state T)) Subscription {
	tier.mustBeValid()
	s.mustBeLive()

	l := &listener{tier: tier, owned: true}
	l.fn = func() {
		fn(s.state)
	}
	s.tiers[tier].add(l)

	return func() {
		l.cancelled = true
		s.tiers[tier].remove(l)
		s.rt.dequeue(l)
	}
}

// ListenerCount reports how many listeners are registered in tier.
func (s *Store[T]) ListenerCount(tier Tier) int {
	tier.mustBeValid()
	return s.tiers[tier].len()
}

// Destroy drops every listener. Notifications already queued for the
// store's own subscriptions become no-ops. The store must not be written to
// or subscribed to afterwards.
func (s *Store[T]) Destroy() {
	for _, tier := range s.tiers {
		for _, l := range tier.order {
			if l.owned {
				l.cancelled = true
			}
		}
		tier.clear()
	}
	s.destroyed = true
}

func (s *Store[T]) attach(l *listener) {
	if s.destroyed {
		return
	}
	s.tiers[l.tier].add(l)
}

func (s *Store[T]) detach(l *listener) {
	s.tiers[l.tier].remove(l)
}

func (s *Store[T]) mustBeLive() {
	if s.destroyed {
		panic(fmt.Errorf("%w: %s", ErrDestroyed, s.name))
	}
}
