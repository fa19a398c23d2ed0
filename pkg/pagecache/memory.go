package pagecache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type entry struct {
	expiresAt time.Time
	page      Page
	key       string
}

// Memory is an in-process page store with TTL expiry and LRU eviction.
// The most recently used page sits at the front of the list.
type Memory struct {
	items map[string]*list.Element
	lru   *list.List
	opts  *memoryOptions
	done  chan struct{}
	mu    sync.Mutex

	closed bool
}

// NewMemory creates a Memory store and starts its sweeper.
func NewMemory(opts ...MemoryOption) *Memory {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory{
		items: make(map[string]*list.Element),
		lru:   list.New(),
		opts:  o,
		done:  make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.sweep()
	}
	return m
}

// Len returns the number of stored pages, expired ones included until swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory) Get(_ context.Context, key string) (Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return Page{}, ErrNotFound
	}
	e := elem.Value.(*entry)
	if m.expired(e) {
		m.remove(elem)
		return Page{}, ErrNotFound
	}
	m.lru.MoveToFront(elem)
	return e.page, nil
}

func (m *Memory) Set(_ context.Context, key string, page Page, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.opts.now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*entry)
		e.page, e.expiresAt = page, expiresAt
		m.lru.MoveToFront(elem)
		return nil
	}
	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		if oldest := m.lru.Back(); oldest != nil {
			m.remove(oldest)
		}
	}
	m.items[key] = m.lru.PushFront(&entry{key: key, page: page, expiresAt: expiresAt})
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		m.remove(elem)
	}
	return nil
}

func (m *Memory) Purge(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]*list.Element)
	m.lru.Init()
	return nil
}

// Close stops the sweeper. It is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory) sweep() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *Memory) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for elem := m.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if m.expired(elem.Value.(*entry)) {
			m.remove(elem)
		}
		elem = prev
	}
}

// caller holds mu
func (m *Memory) expired(e *entry) bool {
	return !e.expiresAt.IsZero() && m.opts.now().After(e.expiresAt)
}

// caller holds mu
func (m *Memory) remove(elem *list.Element) {
	m.lru.Remove(elem)
	delete(m.items, elem.Value.(*entry).key)
}

var _ Store = (*Memory)(nil)
