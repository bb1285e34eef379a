package selkt

import mapset "github.com/deckarep/golang-set/v2"

// Source is anything a selector can depend on. Stores are the only sources;
// the interface exists so dependency sets can hold stores of any state type.
type Source interface {
	Name() string
	Version() uint64
	attach(l *listener)
	detach(l *listener)
}

// DepSet is the set of sources read during one evaluation.
type DepSet struct {
	set mapset.Set[Source]
}

func newDepSet() *DepSet {
	return &DepSet{set: mapset.NewThreadUnsafeSet[Source]()}
}

func (d *DepSet) Len() int {
	return d.set.Cardinality()
}

func (d *DepSet) Contains(src Source) bool {
	return d.set.Contains(src)
}

// Each calls fn for every source, in no particular order.
func (d *DepSet) Each(fn func(Source)) {
	d.set.Each(func(src Source) bool {
		fn(src)
		return false
	})
}

func (d *DepSet) add(src Source) {
	d.set.Add(src)
}

func (d *DepSet) clear() {
	d.set.Clear()
}

// Collect runs fn and returns its result together with every source read
// while it ran. Collections do not merge: an inner Collect records only into
// its own set and the outer set is restored afterwards, even if fn panics.
func Collect[R any](rt *Runtime, fn func() R) (R, *DepSet) {
	deps := newDepSet()
	return collectInto(rt, deps, fn), deps
}

// collectInto is Collect reusing deps, which is emptied first.
func collectInto[R any](rt *Runtime, deps *DepSet, fn func() R) R {
	rt.checkOwner()

	deps.clear()
	prev := rt.tracking
	rt.tracking = deps
	defer func() {
		rt.tracking = prev
	}()
	return fn()
}
