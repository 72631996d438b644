package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	t.Run("miss", func(t *testing.T) {
		_, hit, err := c.Get(ctx, "absent")
		if err != nil || hit {
			t.Errorf("Get(absent) = hit %v, err %v", hit, err)
		}
	})

	t.Run("roundtrip", func(t *testing.T) {
		if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
			t.Fatal(err)
		}
		data, hit, err := c.Get(ctx, "k")
		if err != nil || !hit || string(data) != "v" {
			t.Errorf("Get(k) = %q, %v, %v", data, hit, err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		if err := c.Set(ctx, "old", []byte("v"), time.Nanosecond); err != nil {
			t.Fatal(err)
		}
		time.Sleep(time.Millisecond)
		if _, hit, _ := c.Get(ctx, "old"); hit {
			t.Error("expired entry should miss")
		}
		if _, err := os.Stat(c.path("old")); !os.IsNotExist(err) {
			t.Error("expired entry should be removed")
		}
	})

	t.Run("corrupt", func(t *testing.T) {
		p := c.path("bad")
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
			t.Errorf("corrupt entry: hit %v, err %v", hit, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		_ = c.Set(ctx, "gone", []byte("v"), 0)
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Fatal(err)
		}
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Errorf("second Delete = %v, want nil", err)
		}
	})
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ts := k.ImportsKey("abc", "typescript")
	js := k.ImportsKey("abc", "javascript")
	if ts == js {
		t.Error("source type should change the imports key")
	}
	if !strings.HasPrefix(ts, "imports:") {
		t.Errorf("ImportsKey = %s, want imports: prefix", ts)
	}

	svg := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	png := k.ArtifactKey("h", ArtifactKeyOpts{Format: "png"})
	if svg == png {
		t.Error("format should change the artifact key")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "amas:dev:")
	key := scoped.ImportsKey("abc", "tsx")
	want := "amas:dev:" + NewDefaultKeyer().ImportsKey("abc", "tsx")
	if key != want {
		t.Errorf("ImportsKey = %s, want %s", key, want)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	retryDelay = time.Millisecond
	errBoom := errors.New("boom")

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err %v, calls %d", err, calls)
	}

	calls = 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return errBoom }); err != errBoom || calls != 1 {
		t.Errorf("non-retryable: err %v, calls %d", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errBoom)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: err %v, calls %d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url"); err == nil {
		t.Error("NewRedisCache(bad url) should fail")
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(2)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	for _, k := range []string{"a", "b"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	// Touch a so that b is the eviction candidate.
	if _, hit, _ := c.Get(ctx, "a"); !hit {
		t.Fatal("a should hit")
	}
	if err := c.Set(ctx, "c", []byte("c"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("least recently used entry should be evicted")
	}
	if data, hit, _ := c.Get(ctx, "c"); !hit || string(data) != "c" {
		t.Errorf("Get(c) = %q, %v", data, hit)
	}

	// c was used last, so inserting old evicts a.
	if err := c.Set(ctx, "old", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("a should be evicted by the insert of old")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d after expiry, want 1", c.Len())
	}

	if err := c.Delete(ctx, "c"); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestTiered(t *testing.T) {
	ctx := context.Background()
	front, err := NewMemoryCache(0)
	if err != nil {
		t.Fatal(err)
	}
	back, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewTiered(front, back, time.Minute)

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := back.Get(ctx, "k"); !hit {
		t.Error("Set should write through to the back tier")
	}

	// Entries only in back are promoted on read.
	if err := back.Set(ctx, "cold", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if data, hit, err := c.Get(ctx, "cold"); err != nil || !hit || string(data) != "x" {
		t.Fatalf("Get(cold) = %q, %v, %v", data, hit, err)
	}
	if _, hit, _ := front.Get(ctx, "cold"); !hit {
		t.Error("back hit should be promoted to front")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Delete should clear both tiers")
	}
}
