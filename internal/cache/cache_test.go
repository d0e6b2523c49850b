package cache

import (
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newWithClock[K comparable, V any](ttl time.Duration) (*TTLCache[K, V], *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[K, V](ttl)
	c.now = clock.Now
	return c, clock
}

func TestNew(t *testing.T) {
	ttl := 5 * time.Minute
	c := New[string, int](ttl)

	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.ttl != ttl {
		t.Errorf("TTL mismatch: got %v, want %v", c.ttl, ttl)
	}
	if c.Len() != 0 {
		t.Errorf("new cache has %d entries", c.Len())
	}
}

func TestSetAndGet(t *testing.T) {
	c := New[string, int](time.Minute)

	c.Set("key1", 42)

	value, ok := c.Get("key1")
	if !ok {
		t.Fatal("Get returned ok=false for existing key")
	}
	if value != 42 {
		t.Errorf("Get returned wrong value: got %d, want 42", value)
	}

	if _, ok := c.Get("nonexistent"); ok {
		t.Error("Get returned ok=true for non-existent key")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats = %+v, want 1 hit and 1 miss", stats)
	}
}

func TestEntriesExpireIndependently(t *testing.T) {
	c, clock := newWithClock[string, int](time.Minute)

	c.Set("old", 1)
	clock.Advance(40 * time.Second)
	c.Set("new", 2)
	clock.Advance(30 * time.Second)

	if _, ok := c.Get("old"); ok {
		t.Error("entry older than TTL should be expired")
	}
	if v, ok := c.Get("new"); !ok || v != 2 {
		t.Errorf("Get(new) = %d, %v; want 2, true", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("expired entry should be dropped on lookup, Len = %d", c.Len())
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c, clock := newWithClock[string, string](0)

	c.Set("k", "v")
	clock.Advance(1000 * time.Hour)

	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Errorf("Get = %q, %v; want v, true", v, ok)
	}
}

func TestSetRestartsTTL(t *testing.T) {
	c, clock := newWithClock[string, int](time.Minute)

	c.Set("k", 1)
	clock.Advance(50 * time.Second)
	c.Set("k", 2)
	clock.Advance(50 * time.Second)

	if v, ok := c.Get("k"); !ok || v != 2 {
		t.Errorf("Get = %d, %v; want 2, true", v, ok)
	}
}

func TestDeleteAndReset(t *testing.T) {
	c := New[string, int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted key still present")
	}

	c.Reset()
	if c.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", c.Len())
	}
	if stats := c.Stats(); stats != (Stats{}) {
		t.Errorf("Stats after Reset = %+v, want zero", stats)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Reset should drop every entry")
	}
}

func TestZeroValue(t *testing.T) {
	var c TTLCache[string, int]

	if _, ok := c.Get("k"); ok {
		t.Error("zero-value cache should miss")
	}
	c.Set("k", 7)
	if v, ok := c.Get("k"); !ok || v != 7 {
		t.Errorf("Get = %d, %v; want 7, true", v, ok)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(id*100+j, j)
				c.Get(id*100 + j)
				c.Len()
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 1000 {
		t.Errorf("Len = %d, want 1000", c.Len())
	}
}
