// Package selkt is a fine-grained reactive state container. Stores hold
// state, selections derive slices from any number of stores and are told
// only when their slice changes, and Flush collapses bursts of writes into a
// single notification pass.
//
// A Runtime and everything created from it is confined to one goroutine.
// There are no locks: the only hazard handled is reentrancy, a listener
// writing to a store while a drain is running.
package selkt

import (
	"fmt"
	"time"

	"github.com/petermattis/goid"
)

// Runtime owns the tracking context and the flush queue shared by every store
// and selection created from it.
type Runtime struct {
	cfg   config
	owner int64

	// tracking is the dependency set of the collection in progress, nil when
	// reads are not being recorded.
	tracking *DepSet

	// charged is set while a Flush callback is in charge of the batch.
	charged  bool
	draining bool
	// pending is split by tier so a queued computation always runs before
	// the next subscription, whichever store enqueued it.
	pending [tierCount]*listenerSet
	spare   []*listener

	storeCount uint64
}

// New creates a Runtime owned by the calling goroutine.
func New(opts ...Option) *Runtime {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	rt := &Runtime{
		cfg:   cfg,
		owner: goid.Get(),
	}
	for i := range rt.pending {
		rt.pending[i] = newListenerSet()
	}
	return rt
}

// Flush runs fn as a batch: writes made inside it only enqueue listeners,
// and the queue is drained once after fn returns. Nested calls join the
// outermost batch. Flush(nil) drains right away unless a batch is in charge.
func (rt *Runtime) Flush(fn func()) {
	rt.checkOwner()

	inCharge := false
	if fn != nil {
		if !rt.charged {
			rt.charged = true
			inCharge = true
			defer func() {
				// fn panicked, free the token; queued work waits for the next flush
				if inCharge {
					rt.charged = false
				}
			}()
		}
		fn()
	}

	if !rt.charged || inCharge {
		rt.charged = false
		inCharge = false
		rt.drain()
	}
}

// Flushed wraps fn so every call of the result runs inside Flush.
func (rt *Runtime) Flushed(fn func()) func() {
	return func() {
		rt.Flush(fn)
	}
}

// Batching reports whether a Flush callback is currently in charge.
func (rt *Runtime) Batching() bool {
	return rt.charged
}

// Pending is the number of listeners waiting for the next drain.
func (rt *Runtime) Pending() int {
	n := 0
	for _, q := range rt.pending {
		n += q.len()
	}
	return n
}

// Untrack runs fn without recording store reads into the active collection.
func (rt *Runtime) Untrack(fn func()) {
	prev := rt.tracking
	rt.tracking = nil
	defer func() {
		rt.tracking = prev
	}()
	fn()
}

// drain fires pending listeners pass after pass until the queue stays empty.
// A pass runs the queued computations, then the queued subscriptions, and
// settles computations queued in between before each subscription fires.
// Listeners that write enqueue into the next pass; a drain requested while
// one is running is absorbed by the running loop.
func (rt *Runtime) drain() {
	if rt.draining || rt.Pending() == 0 {
		return
	}
	rt.draining = true
	defer func() {
		rt.draining = false
	}()

	start := time.Now()
	passes, notified := 0, 0
	for rt.Pending() > 0 {
		if passes == rt.cfg.maxPasses {
			rt.abort(fmt.Sprintf("%d passes", passes))
		}
		passes++

		fired := rt.settle()
		batch := rt.pending[TierSubscriptions].take(rt.spare)
		rt.spare = nil
		for _, l := range batch {
			if l.cancelled {
				continue
			}
			// an earlier subscription of this pass may have invalidated a computation
			fired += rt.settle()
			fired++
			l.fn()
		}
		clear(batch)
		rt.spare = batch[:0]
		notified += fired
		rt.cfg.logger.Debug("drain pass", "pass", passes, "listeners", fired)
	}

	rt.cfg.hooks.drainFinished(passes, notified, time.Since(start))
}

// settle fires queued computations until none are left.
func (rt *Runtime) settle() int {
	fired := 0
	q := rt.pending[TierComputations]
	for rounds := 0; q.len() > 0; rounds++ {
		if rounds == rt.cfg.maxPasses {
			rt.abort(fmt.Sprintf("%d computation rounds", rounds))
		}
		for _, l := range q.take(nil) {
			if l.cancelled {
				continue
			}
			fired++
			l.fn()
		}
	}
	return fired
}

// abort empties the queue and panics with ErrDrainLimit.
func (rt *Runtime) abort(reason string) {
	left := rt.Pending()
	for _, q := range rt.pending {
		q.clear()
	}
	err := fmt.Errorf("%w: %s, %d listeners still pending", ErrDrainLimit, reason, left)
	rt.cfg.logger.Error("drain aborted", "error", err)
	panic(err)
}

func (rt *Runtime) enqueue(l *listener) {
	if l.cancelled {
		return
	}
	rt.pending[l.tier].add(l)
}

func (rt *Runtime) dequeue(l *listener) {
	rt.pending[l.tier].remove(l)
}

func (rt *Runtime) track(src Source) {
	if rt.tracking != nil {
		rt.tracking.add(src)
	}
}

func (rt *Runtime) checkOwner() {
	if !rt.cfg.ownerCheck {
		return
	}
	if gid := goid.Get(); gid != rt.owner {
		panic(fmt.Errorf("%w: created on goroutine %d, used on %d", ErrWrongGoroutine, rt.owner, gid))
	}
}

func (rt *Runtime) nextStoreName() string {
	rt.storeCount++
	return fmt.Sprintf("store-%d", rt.storeCount)
}
