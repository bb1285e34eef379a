package selkt

import "time"

// Hooks are optional instrumentation callbacks. They run synchronously on the
// runtime's goroutine and must not write to stores.
type Hooks struct {
	StoreSet         func(store string, version uint64)
	DrainFinished    func(passes, notified int, elapsed time.Duration)
	SelectionChanged func()
}

func (h Hooks) storeSet(store string, version uint64) {
	if h.StoreSet != nil {
		h.StoreSet(store, version)
	}
}

func (h Hooks) drainFinished(passes, notified int, elapsed time.Duration) {
	if h.DrainFinished != nil {
		h.DrainFinished(passes, notified, elapsed)
	}
}

func (h Hooks) selectionChanged() {
	if h.SelectionChanged != nil {
		h.SelectionChanged()
	}
}
