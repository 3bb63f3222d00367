package cache

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryGetSet(t *testing.T) {
	memory := NewMemory()
	ctx := context.Background()

	if _, ok := memory.Get(ctx, "missing"); ok {
		t.Errorf("Get() on empty cache should miss")
	}

	if err := memory.Set(ctx, "report", `{"asOfDate":"2025-01"}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, ok := memory.Get(ctx, "report")
	if !ok {
		t.Fatalf("Get() missed after Set()")
	}
	if value != `{"asOfDate":"2025-01"}` {
		t.Errorf("Get() = %q, expected stored value", value)
	}
}

func TestMemoryOverwrite(t *testing.T) {
	memory := NewMemory()
	ctx := context.Background()

	_ = memory.Set(ctx, "key", "first")
	_ = memory.Set(ctx, "key", "second")

	value, _ := memory.Get(ctx, "key")
	if value != "second" {
		t.Errorf("Get() = %q, expected overwritten value", value)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	memory := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = memory.Set(ctx, "shared", "value")
		}()
		go func() {
			defer wg.Done()
			memory.Get(ctx, "shared")
		}()
	}
	wg.Wait()
}
