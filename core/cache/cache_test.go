package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSet_Get(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	c.Set(ctx, "k", []byte("val"), 0, nil)
	got, ok := c.Get(ctx, "k")
	if !ok {
		t.Fatal("Get: want true")
	}
	if string(got) != "val" {
		t.Errorf("Get = %s, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get(context.Background(), "nonexistent-key-xyz"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestDelete(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	c.Set(ctx, "a", []byte("1"), 0, nil)
	c.Set(ctx, "b", []byte("2"), 0, nil)
	c.Delete(ctx, "a", "b")
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	c.Set(ctx, "ttl", []byte("x"), time.Millisecond, nil)
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get(ctx, "ttl"); ok {
		t.Error("expired key should be gone")
	}
}

func TestDeleteByTag(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	c.Set(ctx, "dash", []byte("1"), 0, []string{"report"})
	c.Set(ctx, "popular", []byte("2"), 0, []string{"report", "movement"})
	c.Set(ctx, "other", []byte("3"), 0, nil)

	if keys := c.GetKeysByTag("report"); len(keys) != 2 {
		t.Errorf("GetKeysByTag = %v, want 2 keys", keys)
	}
	c.DeleteByTag(ctx, "report")
	if _, ok := c.Get(ctx, "dash"); ok {
		t.Error("dash should be deleted")
	}
	if _, ok := c.Get(ctx, "popular"); ok {
		t.Error("popular should be deleted")
	}
	if _, ok := c.Get(ctx, "other"); !ok {
		t.Error("untagged key should survive")
	}
	if keys := c.GetKeysByTag("report"); len(keys) != 0 {
		t.Errorf("tag index not cleared: %v", keys)
	}
}

func TestKey(t *testing.T) {
	if got := Key("popular", 20); got != "popular|20" {
		t.Errorf("Key = %q, want popular|20", got)
	}
}

func TestRemember(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	calls := 0
	load := func() ([]int, error) {
		calls++
		return []int{1, 2, 3}, nil
	}
	for i := 0; i < 3; i++ {
		v, err := Remember(ctx, c, "nums", time.Minute, []string{"t"}, load)
		if err != nil {
			t.Fatalf("Remember: %v", err)
		}
		if len(v) != 3 {
			t.Fatalf("Remember = %v", v)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}

	c.DeleteByTag(ctx, "t")
	_, _ = Remember(ctx, c, "nums", time.Minute, nil, load)
	if calls != 2 {
		t.Errorf("load called %d times after invalidation, want 2", calls)
	}
}

func TestRemember_ErrorNotCached(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	boom := errors.New("boom")
	_, err := Remember(ctx, c, "k", time.Minute, nil, func() (string, error) { return "", boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Error("failed load must not be cached")
	}
}

func TestDefaultAndSetDefault(t *testing.T) {
	mem := NewCache()
	SetDefault(mem)
	t.Cleanup(func() { SetDefault(nil) })
	if Default() != Store(mem) {
		t.Error("Default should return the store passed to SetDefault")
	}
}
