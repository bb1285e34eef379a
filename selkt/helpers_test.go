package selkt_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

type user struct {
	ID int
}

type counterState struct {
	Count int
	Likes int
	Users []user
}

func cloneCounter(c *counterState) *counterState {
	cp := *c
	cp.Users = slices.Clone(c.Users)
	return &cp
}

type call[V any] struct {
	next, prev V
}

type recorder[V any] struct {
	calls []call[V]
}

func (r *recorder[V]) fn(next, prev V) {
	r.calls = append(r.calls, call[V]{next: next, prev: prev})
}

func (r *recorder[V]) nexts() []V {
	out := make([]V, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.next
	}
	return out
}

// panicErr runs fn, requires it to panic with an error and returns that error.
func panicErr(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		e, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		err = e
	}()
	fn()
	return nil
}
