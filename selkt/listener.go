package selkt

import mapset "github.com/deckarep/golang-set/v2"

type listener struct {
	fn   func()
	tier Tier
	// owned listeners belong to a single store and die with it
	owned     bool
	cancelled bool
}

// Subscription cancels a listener. Calling it more than once is a no-op.
type Subscription func()

// listenerSet is an insertion ordered set of listeners. It backs both the
// store tiers and the runtime's pending queues.
type listenerSet struct {
	order   []*listener
	members mapset.Set[*listener]
}

func newListenerSet() *listenerSet {
	return &listenerSet{
		members: mapset.NewThreadUnsafeSet[*listener](),
	}
}

func (ls *listenerSet) len() int {
	return len(ls.order)
}

func (ls *listenerSet) add(l *listener) bool {
	if !ls.members.Add(l) {
		return false
	}
	ls.order = append(ls.order, l)
	return true
}

func (ls *listenerSet) remove(l *listener) {
	if !ls.members.Contains(l) {
		return
	}
	ls.members.Remove(l)
	for i, o := range ls.order {
		if o == l {
			ls.order = append(ls.order[:i], ls.order[i+1:]...)
			return
		}
	}
}

// take hands the current contents to the caller and leaves the set empty,
// backed by spare. The returned slice is no longer touched by the set.
func (ls *listenerSet) take(spare []*listener) []*listener {
	out := ls.order
	ls.order = spare[:0]
	ls.members.Clear()
	return out
}

func (ls *listenerSet) clear() {
	clear(ls.order)
	ls.order = ls.order[:0]
	ls.members.Clear()
}
