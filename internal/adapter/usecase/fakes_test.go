package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"arena-notices/internal/core/domain"
	"arena-notices/internal/core/port"
)

// fakeClock drives timers deterministically. Advance fires due timers
// synchronously in time order, including timers scheduled by the
// callbacks themselves.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clk     *fakeClock
	when    time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clk: c, when: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	deadline := c.now.Add(d)
	c.mu.Unlock()
	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if t.fired || t.stopped || t.when.After(deadline) {
				continue
			}
			if next == nil || t.when.Before(next.when) {
				next = t
			}
		}
		if next == nil {
			c.now = deadline
			c.mu.Unlock()
			return
		}
		if next.when.After(c.now) {
			c.now = next.when
		}
		next.fired = true
		fn := next.fn
		c.mu.Unlock()
		fn()
	}
}

// memStore is an in-memory port.ViewerStore.
type memStore struct {
	mu      sync.Mutex
	viewers map[string]map[string]string
}

func newMemStore() *memStore {
	return &memStore{viewers: make(map[string]map[string]string)}
}

func (s *memStore) Viewer(viewerID string) port.KeyValue {
	return &memKV{store: s, viewer: viewerID}
}

type memKV struct {
	store  *memStore
	viewer string
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	v, ok := m.store.viewers[m.viewer][key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	kv, ok := m.store.viewers[m.viewer]
	if !ok {
		kv = make(map[string]string)
		m.store.viewers[m.viewer] = kv
	}
	kv[key] = value
	return nil
}

func (m *memKV) KeysByPrefix(_ context.Context, prefix string) ([]string, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	var keys []string
	for k := range m.store.viewers[m.viewer] {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// fakeSource serves a fixed pool or a fixed error.
type fakeSource struct {
	mu      sync.Mutex
	pool    []domain.Notice
	err     error
	fetches int
}

func (f *fakeSource) ListActiveNotices(_ context.Context, limit int) ([]domain.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.pool) > limit {
		return f.pool[:limit], nil
	}
	return f.pool, nil
}

// fakeCounters counts increments in memory.
type fakeCounters struct {
	mu       sync.Mutex
	views    map[string]int64
	clicks   map[string]int64
	counters map[string]domain.EngagementCounters
	err      error
}

func newFakeCounters() *fakeCounters {
	return &fakeCounters{
		views:    make(map[string]int64),
		clicks:   make(map[string]int64),
		counters: make(map[string]domain.EngagementCounters),
	}
}

func (f *fakeCounters) IncrementViews(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.views[id]++
	return nil
}

func (f *fakeCounters) IncrementClicks(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.clicks[id]++
	return nil
}

func (f *fakeCounters) GetCounters(_ context.Context, id string) (domain.EngagementCounters, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.EngagementCounters{}, f.err
	}
	return f.counters[id], nil
}

func (f *fakeCounters) viewCount(id string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.views[id]
}

func (f *fakeCounters) clickCount(id string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clicks[id]
}

var errStoreDown = errors.New("store down")
