package selkt

import "github.com/delaneyj/selkt/equality"

// Computed is a derived value living in the computations tier. Its
// selection settles before any subscription of the same stores runs, so
// selectors reading a Computed never observe a stale value.
type Computed[R any] struct {
	rt    *Runtime
	deps  func() *DepSet
	stop  func()
	value R
	fresh bool
	calc  func() R
}

// Compute selects a slice with selector and maps it with mapper. The mapper
// runs lazily, at most once per change of the slice.
func Compute[S, R any](rt *Runtime, selector func() S, mapper func(S) R) *Computed[R] {
	return ComputeWith(rt, selector, mapper, nil)
}

// ComputeWith is Compute with a custom equality function for the slice.
func ComputeWith[S, R any](rt *Runtime, selector func() S, mapper func(S) R, eq equality.Func[S]) *Computed[R] {
	c := &Computed[R]{rt: rt}

	var selected S
	sel := newSelection(rt, TierComputations, selector, func(next, _ S) {
		selected = next
		c.fresh = false
	}, eq)

	c.deps = sel.Deps
	c.stop = sel.Stop
	c.calc = func() R {
		return mapper(selected)
	}
	return c
}

// Value returns the mapped value. Read inside a selector, it subscribes the
// selector to the stores this computed depends on.
func (c *Computed[R]) Value() R {
	c.deps().Each(c.rt.track)
	if !c.fresh {
		c.rt.Untrack(func() {
			c.value = c.calc()
		})
		c.fresh = true
	}
	return c.value
}

// Stop detaches the computed from its stores. Value keeps returning the
// last result.
func (c *Computed[R]) Stop() {
	c.stop()
}
