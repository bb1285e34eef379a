package selkt

import (
	"fmt"
	"slices"

	"github.com/delaneyj/selkt/equality"
)

// Selection is a live selector. It re-runs whenever one of the stores read
// on its latest evaluation is written, and reports a new slice only when the
// equality function says it differs from the last one.
type Selection[V any] struct {
	rt       *Runtime
	selector func() V
	eq       equality.Func[V]
	onChange func(next, prev V)
	changers []*changer[V]

	prev      V
	evaluated bool
	stopped   bool
	running   bool
	rerun     bool

	// deps is the dependency set of the latest evaluation, spare the one
	// reused for the next.
	deps  *DepSet
	spare *DepSet
	l     *listener
}

type changer[V any] struct {
	fn      func(next, prev V)
	removed bool
}

// Select evaluates selector right away, calls onChange with the result and
// the zero V, and again with (next, prev) after every change. Slices are
// compared with equality.StrictEqual. onChange may be nil.
func Select[V any](rt *Runtime, selector func() V, onChange func(next, prev V)) *Selection[V] {
	return SelectWith(rt, selector, onChange, nil)
}

// SelectWith is Select with a custom equality function; nil means
// equality.StrictEqual.
func SelectWith[V any](rt *Runtime, selector func() V, onChange func(next, prev V), eq equality.Func[V]) *Selection[V] {
	return newSelection(rt, TierSubscriptions, selector, onChange, eq)
}

func newSelection[V any](rt *Runtime, tier Tier, selector func() V, onChange func(next, prev V), eq equality.Func[V]) *Selection[V] {
	rt.checkOwner()
	if eq == nil {
		eq = equality.StrictEqual[V]
	}
	s := &Selection[V]{
		rt:       rt,
		selector: selector,
		eq:       eq,
		onChange: onChange,
		deps:     newDepSet(),
		spare:    newDepSet(),
	}
	s.l = &listener{tier: tier, fn: s.evaluate}
	s.evaluate()
	return s
}

// evaluate re-runs the selector. A write made by a consumer outside of a
// drain can call back into evaluate; that request is folded into a rerun of
// the outer call so consumers never see slices out of order.
func (s *Selection[V]) evaluate() {
	if s.stopped {
		return
	}
	if s.running {
		s.rerun = true
		return
	}
	s.running = true
	defer func() {
		s.running = false
	}()

	for runs := 1; ; runs++ {
		s.rerun = false
		s.run()
		if !s.rerun || s.stopped {
			return
		}
		if runs == s.rt.cfg.maxPasses {
			panic(fmt.Errorf("%w: selection re-ran %d times", ErrDrainLimit, runs))
		}
	}
}

func (s *Selection[V]) run() {
	// this run supersedes any queued one
	s.rt.dequeue(s.l)

	next := collectInto(s.rt, s.spare, s.selector)
	s.resubscribe()

	if s.evaluated && s.eq(next, s.prev) {
		return
	}
	prev := s.prev
	s.prev = next
	s.evaluated = true
	s.rt.cfg.hooks.selectionChanged()

	if s.onChange != nil {
		s.onChange(next, prev)
	}
	for _, c := range slices.Clone(s.changers) {
		if s.stopped {
			return
		}
		if !c.removed {
			c.fn(next, prev)
		}
	}
}

// resubscribe moves the listener from the previous dependency set to the
// one just collected. Stores present in both keep their place in line.
func (s *Selection[V]) resubscribe() {
	cur, old := s.spare, s.deps
	old.Each(func(src Source) {
		if !cur.Contains(src) {
			src.detach(s.l)
		}
	})
	cur.Each(func(src Source) {
		src.attach(s.l)
	})
	s.deps, s.spare = cur, old
	s.spare.clear()
}

// State is the last slice reported.
func (s *Selection[V]) State() V {
	return s.prev
}

// Deps is the dependency set of the latest evaluation.
func (s *Selection[V]) Deps() *DepSet {
	return s.deps
}

// Subscribe adds another consumer of changes. It is not called with the
// current slice.
func (s *Selection[V]) Subscribe(fn func(next, prev V)) Subscription {
	c := &changer[V]{fn: fn}
	s.changers = append(s.changers, c)
	return func() {
		if c.removed {
			return
		}
		c.removed = true
		s.changers = slices.DeleteFunc(s.changers, func(o *changer[V]) bool {
			return o == c
		})
	}
}

// Stop detaches the selection from every store and drops its consumers.
// Calling it again does nothing.
func (s *Selection[V]) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.l.cancelled = true
	s.deps.Each(func(src Source) {
		src.detach(s.l)
	})
	s.deps.clear()
	s.rt.dequeue(s.l)
	s.onChange = nil
	for _, c := range s.changers {
		c.removed = true
	}
	s.changers = nil
}
