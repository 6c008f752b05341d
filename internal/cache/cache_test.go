package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute, 10)
	defer c.Close()

	c.Set("caesar:3:Hello", "Khoor")
	got, ok := c.Get("caesar:3:Hello")
	if !ok || got != "Khoor" {
		t.Errorf("Get() = %q, %v", got, ok)
	}

	c.Delete("caesar:3:Hello")
	if _, ok := c.Get("caesar:3:Hello"); ok {
		t.Error("Get() after Delete found the item")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(time.Minute, 10)
	defer c.Close()

	c.SetWithTTL("k", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expired item returned")
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d, want 0", c.Size())
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(time.Minute, 2)
	defer c.Close()

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("a", "3")
	if c.Size() != 2 {
		t.Fatalf("overwrite evicted: Size() = %d", c.Size())
	}
	c.Set("c", "4")
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("newest item was evicted")
	}
}

func TestCacheGetOrLoad(t *testing.T) {
	c := NewCache(time.Minute, 10)
	defer c.Close()

	var calls int32
	release := make(chan struct{})
	loader := func() (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "Aldcq Qbhfy", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := c.GetOrLoad("hill", loader)
			if err != nil || v != "Aldcq Qbhfy" {
				t.Errorf("GetOrLoad() = %q, %v", v, err)
			}
		}()
	}
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("loader called %d times, want 1", n)
	}

	v, hit, err := c.GetOrLoad("hill", loader)
	if err != nil || !hit || v != "Aldcq Qbhfy" {
		t.Errorf("second GetOrLoad() = %q, %v, %v", v, hit, err)
	}
}

func TestCacheGetOrLoadError(t *testing.T) {
	c := NewCache(time.Minute, 10)
	defer c.Close()

	boom := errors.New("non-invertible")
	_, _, err := c.GetOrLoad("bad", func() (string, error) { return "", boom })
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if c.Size() != 0 {
		t.Error("error result was cached")
	}
}
