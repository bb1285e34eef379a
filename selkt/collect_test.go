package selkt_test

import (
	"testing"

	"github.com/delaneyj/selkt/selkt"
	"github.com/stretchr/testify/assert"
)

func TestCollect(t *testing.T) {
	rt := selkt.New()
	a := selkt.NewStore(rt, 1)
	b := selkt.NewStore(rt, 2)
	c := selkt.NewStore(rt, 3)

	sum, deps := selkt.Collect(rt, func() int {
		return a.State() + b.State() + c.Peek()
	})
	assert.Equal(t, 6, sum)
	assert.Equal(t, 2, deps.Len())
	assert.True(t, deps.Contains(a))
	assert.True(t, deps.Contains(b))
	assert.False(t, deps.Contains(c))

	var names []string
	deps.Each(func(src selkt.Source) {
		names = append(names, src.Name())
	})
	assert.ElementsMatch(t, []string{a.Name(), b.Name()}, names)
}

func TestCollectOutsideSelectorRecordsNothing(t *testing.T) {
	rt := selkt.New()
	a := selkt.NewStore(rt, 1)

	assert.Equal(t, 1, a.State())
	_, deps := selkt.Collect(rt, func() struct{} { return struct{}{} })
	assert.Equal(t, 0, deps.Len())
}

func TestNestedCollectDoesNotMerge(t *testing.T) {
	rt := selkt.New()
	a := selkt.NewStore(rt, 0)
	b := selkt.NewStore(rt, 0)
	c := selkt.NewStore(rt, 0)

	var inner *selkt.DepSet
	_, outer := selkt.Collect(rt, func() int {
		a.State()
		_, inner = selkt.Collect(rt, b.State)
		return c.State()
	})

	assert.Equal(t, 2, outer.Len())
	assert.True(t, outer.Contains(a))
	assert.True(t, outer.Contains(c))
	assert.Equal(t, 1, inner.Len())
	assert.True(t, inner.Contains(b))
}

func TestUntrack(t *testing.T) {
	rt := selkt.New()
	a := selkt.NewStore(rt, 0)
	b := selkt.NewStore(rt, 0)

	_, deps := selkt.Collect(rt, func() int {
		rt.Untrack(func() {
			b.State()
		})
		return a.State()
	})
	assert.Equal(t, 1, deps.Len())
	assert.True(t, deps.Contains(a))
}

func TestCollectRestoresAfterPanic(t *testing.T) {
	rt := selkt.New()
	a := selkt.NewStore(rt, 0)
	b := selkt.NewStore(rt, 0)
	c := selkt.NewStore(rt, 0)

	_, deps := selkt.Collect(rt, func() int {
		a.State()
		assert.Panics(t, func() {
			selkt.Collect(rt, func() int {
				b.State()
				panic("selector failed")
			})
		})
		return c.State()
	})

	assert.Equal(t, 2, deps.Len())
	assert.False(t, deps.Contains(b))
}

func TestSelectionSubscribe(t *testing.T) {
	rt := selkt.New()
	store := selkt.NewStore(rt, 0)
	sel := selkt.Select(rt, store.State, nil)

	first := &recorder[int]{}
	second := &recorder[int]{}
	unsub := sel.Subscribe(first.fn)
	sel.Subscribe(second.fn)
	assert.Empty(t, first.calls)

	store.SetValue(1)
	unsub()
	unsub()
	store.SetValue(2)

	assert.Equal(t, []call[int]{{1, 0}}, first.calls)
	assert.Equal(t, []call[int]{{1, 0}, {2, 1}}, second.calls)

	sel.Stop()
	store.SetValue(3)
	assert.Len(t, second.calls, 2)
	assert.Equal(t, 0, sel.Deps().Len())
}
