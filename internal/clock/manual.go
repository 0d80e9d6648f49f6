package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called.
// Callbacks run synchronously on the goroutine calling Advance, in due order.
// Timers due at the same instant fire in the order they were scheduled.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	due       time.Duration
	period    time.Duration // Zero for one-shot timers
	seq       uint64
	fn        func()
	cancelled bool
}

// NewManual creates a manual clock at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Every schedules fn every period, starting one period from now.
func (m *Manual) Every(period time.Duration, fn func()) Cancel {
	if period <= 0 {
		panic("clock: non-positive period")
	}
	return m.schedule(period, period, fn)
}

// After schedules fn once, delay from now.
func (m *Manual) After(delay time.Duration, fn func()) Cancel {
	return m.schedule(delay, 0, fn)
}

func (m *Manual) schedule(delay, period time.Duration, fn func()) Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{
		due:    m.now + delay,
		period: period,
		seq:    m.seq,
		fn:     fn,
	}
	m.timers = append(m.timers, t)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		t.cancelled = true
	}
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of live timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing every timer that falls due.
// Timers scheduled by a callback fire within the same call if they come due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		t := m.next(target)
		if t == nil {
			break
		}
		t.fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// next pops the earliest timer due at or before target and moves the clock to
// its due time. Periodic timers are re-armed before the callback runs.
func (m *Manual) next(target time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.timers = live

	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due != m.timers[j].due {
			return m.timers[i].due < m.timers[j].due
		}
		return m.timers[i].seq < m.timers[j].seq
	})

	if len(m.timers) == 0 || m.timers[0].due > target {
		return nil
	}

	t := m.timers[0]
	m.now = t.due
	fired := &manualTimer{fn: t.fn}
	if t.period > 0 {
		t.due += t.period
		m.seq++
		t.seq = m.seq
	} else {
		t.cancelled = true
	}
	return fired
}

var _ Clock = (*Manual)(nil)
