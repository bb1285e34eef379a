package selkt

import "github.com/delaneyj/selkt/equality"

// Setter describes one write to a store. It is a closed set of variants
// built with Value, Mutate, Update and Modify.
type Setter[T any] interface {
	apply(state T) (next T, replaced bool)
}

type valueSetter[T any] struct {
	value T
}

func (v valueSetter[T]) apply(T) (T, bool) {
	return v.value, true
}

type modifier[T any] func(state T) (T, bool)

func (m modifier[T]) apply(state T) (T, bool) {
	next, replaced := m(state)
	if !replaced {
		return state, false
	}
	return next, true
}

// Value replaces the state with v. The zero value is a valid replacement.
func Value[T any](v T) Setter[T] {
	return valueSetter[T]{value: v}
}

// Mutate changes the state in place. It only makes sense for reference-like
// state such as pointers, maps and slices.
func Mutate[T any](fn func(state T)) Setter[T] {
	return modifier[T](func(state T) (T, bool) {
		fn(state)
		return state, false
	})
}

// Update replaces the state with whatever fn returns.
func Update[T any](fn func(state T) T) Setter[T] {
	return modifier[T](func(state T) (T, bool) {
		return fn(state), true
	})
}

// Modify is the general form: fn reports replaced=false when it mutated the
// state in place and true when next, zero value included, is the new state.
func Modify[T any](fn func(state T) (next T, replaced bool)) Setter[T] {
	return modifier[T](fn)
}

// Resolve applies s to state. It is exported for Producer implementations.
func Resolve[T any](s Setter[T], state T) (next T, replaced bool) {
	return s.apply(state)
}

// Producer computes the next state of an immutable store without touching
// the base value. Returning base itself signals that nothing changed.
type Producer[T any] interface {
	Produce(base T, s Setter[T]) T
}

// ProducerFunc adapts a function to Producer.
type ProducerFunc[T any] func(base T, s Setter[T]) T

func (f ProducerFunc[T]) Produce(base T, s Setter[T]) T {
	return f(base, s)
}

// CloneProducer builds a Producer that runs in-place setters against a copy
// made by clone. When the copy ends up deeply equal to base, base is
// returned so the store can skip notifying.
func CloneProducer[T any](clone func(T) T) Producer[T] {
	return ProducerFunc[T](func(base T, s Setter[T]) T {
		if v, ok := s.(valueSetter[T]); ok {
			return v.value
		}
		draft := clone(base)
		next, replaced := s.apply(draft)
		if replaced {
			return next
		}
		if equality.DeepEqual(draft, base) {
			return base
		}
		return draft
	})
}
