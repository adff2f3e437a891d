package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_rankings/logging"
	"github.com/mww/fantasy_rankings/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type testValue struct {
	Name  string
	Count int
}

func newTestCache(t *testing.T) (*Cache, *clock.Mock, *metrics.Metrics) {
	t.Helper()
	mock := clock.NewMock()
	m := metrics.New()
	return New(NewMemoryStore(mock), m, logging.Discard()), mock, m
}

func TestKey(t *testing.T) {
	tests := map[string]struct {
		fn   string
		args []any
		want string
	}{
		"no args":   {fn: "sleeper.players", want: "sleeper.players"},
		"one arg":   {fn: "sleeper.players", args: []any{"https://api.sleeper.app/v1"}, want: "sleeper.players|https://api.sleeper.app/v1"},
		"mixed":     {fn: "sportsdata.projections", args: []any{"http://x", "2024REG", 3}, want: "sportsdata.projections|http://x|2024REG|3"},
		"empty arg": {fn: "f", args: []any{""}, want: "f|"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Key(tc.fn, tc.args...); got != tc.want {
				t.Errorf("expected: '%s', got: '%s'", tc.want, got)
			}
		})
	}
}

func TestGetOrCompute_cachesUntilExpiry(t *testing.T) {
	c, mock, m := newTestCache(t)
	ctx := context.Background()

	calls := 0
	compute := func(ctx context.Context) (testValue, error) {
		calls++
		return testValue{Name: "Bijan Robinson", Count: calls}, nil
	}

	v, err := GetOrCompute(ctx, c, "k", 5*time.Minute, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Count != 1 {
		t.Fatalf("expected first compute, got %v", v)
	}

	mock.Add(4 * time.Minute)
	v, err = GetOrCompute(ctx, c, "k", 5*time.Minute, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Count != 1 || v.Name != "Bijan Robinson" {
		t.Errorf("expected cached value, got %v", v)
	}

	mock.Add(2 * time.Minute)
	v, err = GetOrCompute(ctx, c, "k", 5*time.Minute, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Count != 2 {
		t.Errorf("expected value to be recomputed after ttl, got %v", v)
	}

	if got := testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")); got != 1 {
		t.Errorf("expected 1 hit, got %v", got)
	}
	if got := testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")); got != 2 {
		t.Errorf("expected 2 misses, got %v", got)
	}
}

func TestGetOrCompute_errorsAreNotCached(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := GetOrCompute(ctx, c, "k", time.Minute, func(ctx context.Context) ([]string, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	v, err := GetOrCompute(ctx, c, "k", time.Minute, func(ctx context.Context) ([]string, error) {
		return []string{"ok"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 1 || v[0] != "ok" {
		t.Errorf("unexpected value: %v", v)
	}
}

func TestGetOrCompute_keysAreIndependent(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	a, _ := GetOrCompute(ctx, c, Key("f", "http://a"), time.Minute, func(ctx context.Context) (string, error) { return "a", nil })
	b, _ := GetOrCompute(ctx, c, Key("f", "http://b"), time.Minute, func(ctx context.Context) (string, error) { return "b", nil })
	if a != "a" || b != "b" {
		t.Errorf("keys collided: a=%s b=%s", a, b)
	}
}

func TestGetOrCompute_singleFlight(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	compute := func(ctx context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	wg := sync.WaitGroup{}
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := GetOrCompute(ctx, c, "slow", time.Minute, compute)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = v
		}(i)
	}

	// Give the goroutines a chance to pile up on the same key.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		if r != 42 {
			t.Errorf("expected 42, got %d", r)
		}
	}
	// Late arrivals may hit the cache instead of joining the flight, but nobody recomputes.
	if calls.Load() != 1 {
		t.Errorf("expected a single compute call, got %d", calls.Load())
	}
}

type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (brokenStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("connection refused")
}

func TestGetOrCompute_brokenStore(t *testing.T) {
	c := New(brokenStore{}, nil, logging.Discard())

	v, err := GetOrCompute(context.Background(), c, "k", time.Minute, func(ctx context.Context) (string, error) {
		return "computed", nil
	})
	if err != nil {
		t.Fatalf("a broken store should not fail the call: %v", err)
	}
	if v != "computed" {
		t.Errorf("unexpected value: %s", v)
	}
}

func TestGetOrCompute_undecodableEntry(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.store.Set(ctx, "k", []byte("not json"), time.Minute); err != nil {
		t.Fatalf("error seeding store: %v", err)
	}

	v, err := GetOrCompute(ctx, c, "k", time.Minute, func(ctx context.Context) (testValue, error) {
		return testValue{Name: "fresh"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Name != "fresh" {
		t.Errorf("expected recomputed value, got %v", v)
	}
}

func TestGetOrCompute_firstCallerGivesUp(t *testing.T) {
	c, _, _ := newTestCache(t)

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	computeErr := make(chan error, 1)
	compute := func(ctx context.Context) (string, error) {
		calls.Add(1)
		close(started)
		<-release
		computeErr <- ctx.Err()
		return "directory", nil
	}

	first, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() {
		_, err := GetOrCompute(first, c, "players", time.Minute, compute)
		firstDone <- err
	}()
	<-started

	type result struct {
		v   string
		err error
	}
	secondDone := make(chan result, 1)
	go func() {
		v, err := GetOrCompute(context.Background(), c, "players", time.Minute, compute)
		secondDone <- result{v, err}
	}()
	// Let the second caller join the flight before the first one leaves.
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstDone:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected the first caller to see its own cancellation, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("first caller kept waiting after its context was cancelled")
	}

	close(release)
	second := <-secondDone
	if second.err != nil {
		t.Fatalf("second caller failed: %v", second.err)
	}
	if second.v != "directory" {
		t.Errorf("unexpected value: %s", second.v)
	}
	if err := <-computeErr; err != nil {
		t.Errorf("compute context should outlive the first caller, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single compute call, got %d", calls.Load())
	}

	v, err := GetOrCompute(context.Background(), c, "players", time.Minute, func(ctx context.Context) (string, error) {
		return "", errors.New("should have been cached")
	})
	if err != nil || v != "directory" {
		t.Errorf("expected the value to be cached, got %q, %v", v, err)
	}
}

func TestGetOrCompute_computeTimeout(t *testing.T) {
	c, _, _ := newTestCache(t)
	c.computeTimeout = 20 * time.Millisecond

	_, err := GetOrCompute(context.Background(), c, "slow", time.Minute, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected the detached compute to be bounded, got %v", err)
	}
}
