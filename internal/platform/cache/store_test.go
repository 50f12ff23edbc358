package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemo_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	memo := NewMemo[string]()
	var calls atomic.Int32

	loader := func() (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := memo.GetOrLoad("same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestMemo_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	memo := NewMemo[int]()
	var calls atomic.Int32

	loader := func() (int, error) {
		calls.Add(1)
		return 42, nil
	}

	if _, err := memo.GetOrLoad("k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if v, err := memo.GetOrLoad("k", loader); err != nil || v != 42 {
		t.Fatalf("second GetOrLoad=(%d,%v)", v, err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
	if memo.Len() != 1 {
		t.Fatalf("Len=%d, want 1", memo.Len())
	}
}

func TestMemo_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	memo := NewMemo[int]()
	if _, err := memo.GetOrLoad("k", func() (int, error) { return 0, errUnexpectedValue }); !errors.Is(err, errUnexpectedValue) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := memo.Get("k"); ok {
		t.Fatalf("failed load must not be cached")
	}
	if _, err := memo.GetOrLoad("k", nil); err == nil {
		t.Fatalf("expected error for nil loader")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
