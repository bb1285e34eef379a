package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/selkt/selkt"
	"github.com/delaneyj/selkt/selktprom"
	"github.com/jamiealquiza/tachymeter"
	"github.com/prometheus/client_golang/prometheus"
)

type result struct {
	cfg           ScenarioConfig
	iterations    int
	notifications int64
	drains        int64
	digest        uint64
	duration      time.Duration
	calc          *tachymeter.Metrics
}

// updateRate is notifications per millisecond.
func (r *result) updateRate() float64 {
	return float64(r.notifications) / (float64(r.duration) / float64(time.Millisecond))
}

// tracer folds every observed slice into one hash, so two runs of a scenario
// can be compared without keeping the trace.
type tracer struct {
	h   *xxhash.Digest
	buf []byte
}

func newTracer() *tracer {
	return &tracer{h: xxhash.New()}
}

func (t *tracer) observe(values ...int) {
	t.buf = t.buf[:0]
	for _, v := range values {
		t.buf = strconv.AppendInt(t.buf, int64(v), 10)
		t.buf = append(t.buf, ',')
	}
	t.buf = append(t.buf, '\n')
	t.h.Write(t.buf)
}

func addOne(v int) int {
	return v + 1
}

// runScenario builds a fresh runtime for sc and writes to it iterations
// times, timing every write including the drain it triggers.
func runScenario(sc ScenarioConfig, iterations int) (*result, error) {
	reg := prometheus.NewRegistry()
	collector := selktprom.New(selktprom.WithRegistry(reg))
	rt := selkt.New(selkt.WithHooks(collector.Hooks()))
	tr := newTracer()

	var step func(i int)
	switch sc.Kind {
	case KindFanout:
		step = buildFanout(rt, sc, tr)
	case KindDynamic:
		step = buildDynamic(rt, sc, tr)
	case KindBatch:
		step = buildBatch(rt, sc, tr)
	default:
		return nil, fmt.Errorf("unknown scenario kind %q", sc.Kind)
	}

	// setup notifications are not part of the measurement
	base, err := gatherCounter(reg, "selkt_notifications_total")
	if err != nil {
		return nil, err
	}
	baseDrains, err := gatherCounter(reg, "selkt_drains_total")
	if err != nil {
		return nil, err
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iterations})
	start := time.Now()
	for i := range iterations {
		s := time.Now()
		step(i)
		tach.AddTime(time.Since(s))
	}
	duration := time.Since(start)

	notified, err := gatherCounter(reg, "selkt_notifications_total")
	if err != nil {
		return nil, err
	}
	drains, err := gatherCounter(reg, "selkt_drains_total")
	if err != nil {
		return nil, err
	}

	return &result{
		cfg:           sc,
		iterations:    iterations,
		notifications: int64(notified - base),
		drains:        int64(drains - baseDrains),
		digest:        tr.h.Sum64(),
		duration:      duration,
		calc:          tach.Calc(),
	}, nil
}

func buildFanout(rt *selkt.Runtime, sc ScenarioConfig, tr *tracer) func(int) {
	src := selkt.NewStore(rt, 1, selkt.WithName("src"))
	for w := range sc.Width {
		last := selkt.Compute(rt, src.State, addOne)
		for range sc.Height - 1 {
			prev := last
			last = selkt.Compute(rt, prev.Value, addOne)
		}
		selkt.Select(rt, last.Value, func(next, _ int) {
			tr.observe(w, next)
		})
	}
	return func(int) {
		src.Update(addOne)
	}
}

func buildDynamic(rt *selkt.Runtime, sc ScenarioConfig, tr *tracer) func(int) {
	flag := selkt.NewStore(rt, false, selkt.WithName("flag"))
	a := selkt.NewStore(rt, 0, selkt.WithName("a"))
	b := selkt.NewStore(rt, 0, selkt.WithName("b"))
	for w := range sc.Width {
		selkt.Select(rt, func() int {
			if flag.State() {
				return a.State() + w
			}
			return b.State() - w
		}, func(next, _ int) {
			tr.observe(w, next)
		})
	}
	return func(i int) {
		switch {
		case i%sc.Height == 0:
			flag.Update(func(on bool) bool { return !on })
		case i%2 == 0:
			a.Update(addOne)
		default:
			b.Update(addOne)
		}
	}
}

func buildBatch(rt *selkt.Runtime, sc ScenarioConfig, tr *tracer) func(int) {
	stores := make([]*selkt.Store[int], sc.Width)
	for i := range stores {
		stores[i] = selkt.NewStore(rt, i, selkt.WithName(fmt.Sprintf("s%d", i)))
	}
	for h := range sc.Height {
		selkt.Select(rt, func() int {
			sum := h
			for _, s := range stores {
				sum += s.State()
			}
			return sum
		}, func(next, _ int) {
			tr.observe(h, next)
		})
	}
	return func(int) {
		rt.Flush(func() {
			for _, s := range stores {
				s.Update(addOne)
			}
		})
	}
}

func gatherCounter(reg *prometheus.Registry, name string) (float64, error) {
	families, err := reg.Gather()
	if err != nil {
		return 0, fmt.Errorf("gather metrics: %w", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		total := 0.0
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total, nil
	}
	return 0, nil
}
