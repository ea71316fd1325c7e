package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/annai/backend/internal/domain"
)

func newTestCache(t *testing.T, size int) *MemoryCache {
	t.Helper()
	cache, err := NewMemoryCache(size)
	if err != nil {
		t.Fatalf("NewMemoryCache() error = %v", err)
	}
	return cache
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := newTestCache(t, 16)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value []byte
		ttl   time.Duration
	}{
		{
			name:  "store and retrieve products",
			key:   "products:acme",
			value: []byte(`[{"name":"Acme Edition"}]`),
			ttl:   1 * time.Minute,
		},
		{
			name:  "store and retrieve empty catalog",
			key:   "products:ab",
			value: []byte(`[]`),
			ttl:   1 * time.Minute,
		},
		{
			name:  "store with short TTL",
			key:   "products:short",
			value: []byte(`[]`),
			ttl:   1 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value, tt.ttl); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			// For short TTL test, wait for expiration
			if tt.ttl < 10*time.Millisecond {
				time.Sleep(10 * time.Millisecond)
				_, err := cache.Get(ctx, tt.key)
				if !errors.Is(err, domain.ErrCacheMiss) {
					t.Errorf("Expected cache miss after expiration, got error = %v", err)
				}
				return
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != string(tt.value) {
				t.Errorf("Get() = %s, want %s", got, tt.value)
			}
		})
	}
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	cache := newTestCache(t, 16)
	ctx := context.Background()

	value := []byte("original")
	if err := cache.Set(ctx, "k", value, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	got[1] = 'Y'

	again, _ := cache.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("Get() = %s, want original", again)
	}
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := newTestCache(t, 16)

	_, err := cache.Get(context.Background(), "non-existent-key")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := newTestCache(t, 16)
	ctx := context.Background()

	key := "delete-test"
	if err := cache.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	_, err := cache.Get(ctx, key)
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after delete error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	cache := newTestCache(t, 16)
	ctx := context.Background()

	exists, err := cache.Exists(ctx, "exists-test")
	if err != nil || exists {
		t.Errorf("Exists() = %v, %v; want false, nil for non-existent key", exists, err)
	}

	if err := cache.Set(ctx, "exists-test", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	exists, err = cache.Exists(ctx, "exists-test")
	if err != nil || !exists {
		t.Errorf("Exists() = %v, %v; want true, nil after setting value", exists, err)
	}

	if err := cache.Set(ctx, "short-ttl", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	exists, err = cache.Exists(ctx, "short-ttl")
	if err != nil || exists {
		t.Errorf("Exists() = %v, %v; want false, nil after expiration", exists, err)
	}
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := newTestCache(t, 3)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := cache.Set(ctx, key, []byte(key), time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	// Touch "a" so "b" becomes the oldest entry
	if _, err := cache.Get(ctx, "a"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if err := cache.Set(ctx, "d", []byte("d"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if size := cache.Size(); size != 3 {
		t.Errorf("Size() = %d, want 3", size)
	}
	if _, err := cache.Get(ctx, "b"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get(b) error = %v, want cache miss after eviction", err)
	}
	if _, err := cache.Get(ctx, "a"); err != nil {
		t.Errorf("Get(a) error = %v, want recently used entry kept", err)
	}
}

func TestMemoryCache_DefaultSize(t *testing.T) {
	cache := newTestCache(t, 0)
	ctx := context.Background()

	for i := 0; i < DefaultMemorySize+10; i++ {
		_ = cache.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Minute)
	}
	if size := cache.Size(); size != DefaultMemorySize {
		t.Errorf("Size() = %d, want %d", size, DefaultMemorySize)
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := newTestCache(t, 16)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := string(rune('a' + i))
		if err := cache.Set(ctx, key, []byte(key), time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if size := cache.Size(); size != 5 {
		t.Fatalf("Size() = %d, want 5 before clear", size)
	}

	cache.Clear()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after clear", size)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := newTestCache(t, 64)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := string(rune('a' + id))
			if err := cache.Set(ctx, key, []byte(key), time.Minute); err != nil {
				t.Errorf("Concurrent Set() error = %v", err)
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("Concurrent Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()
}
