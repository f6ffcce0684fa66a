package blacklist

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baseclean/baseclean/internal/assets"
)

type fakeProvider struct {
	mu    sync.Mutex
	data  map[string]bool
	err   error
	calls atomic.Int64
	block chan struct{} // when set, Fetch waits on it
}

func (f *fakeProvider) Fetch(ctx context.Context) (map[string]bool, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]bool, len(f.data))
	for k, v := range f.data {
		out[k] = v
	}
	return out, nil
}

func (f *fakeProvider) set(data map[string]bool, err error) {
	f.mu.Lock()
	f.data, f.err = data, err
	f.mu.Unlock()
}

func TestLookupFetchesAndCaches(t *testing.T) {
	p := &fakeProvider{data: map[string]bool{"0xbad": true}}
	c := New(p, time.Hour, nil)

	flagged, err := c.Lookup(context.Background(), "0xBAD")
	require.NoError(t, err)
	assert.True(t, flagged)

	flagged, err = c.Lookup(context.Background(), "0xgood")
	require.NoError(t, err)
	assert.False(t, flagged)

	// Second lookup inside the TTL must not refetch.
	assert.EqualValues(t, 1, p.calls.Load())
}

func TestTTLExpiryTriggersRefresh(t *testing.T) {
	p := &fakeProvider{data: map[string]bool{"0xbad": true}}
	c := New(p, time.Hour, nil)

	now := time.Now()
	c.nowFn = func() time.Time { return now }

	_, err := c.Lookup(context.Background(), "0xbad")
	require.NoError(t, err)
	require.EqualValues(t, 1, p.calls.Load())

	now = now.Add(2 * time.Hour)
	p.set(map[string]bool{"0xworse": true}, nil)

	flagged, err := c.Lookup(context.Background(), "0xworse")
	require.NoError(t, err)
	assert.True(t, flagged)
	assert.EqualValues(t, 2, p.calls.Load())
}

func TestStaleFallbackOnRefreshFailure(t *testing.T) {
	p := &fakeProvider{data: map[string]bool{"0xbad": true}}
	c := New(p, time.Hour, nil)

	now := time.Now()
	c.nowFn = func() time.Time { return now }

	_, err := c.Lookup(context.Background(), "0xbad")
	require.NoError(t, err)

	now = now.Add(25 * time.Hour)
	p.set(nil, errors.New("upstream down"))

	// Refresh fails but last-known-good data is served.
	flagged, err := c.Lookup(context.Background(), "0xbad")
	require.NoError(t, err)
	assert.True(t, flagged)
}

func TestNoDataWhenNeverPopulated(t *testing.T) {
	p := &fakeProvider{err: errors.New("upstream down")}
	c := New(p, time.Hour, nil)

	_, err := c.Lookup(context.Background(), "0xbad")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestConcurrentCallersShareOneRefresh(t *testing.T) {
	p := &fakeProvider{data: map[string]bool{"0xbad": true}, block: make(chan struct{})}
	c := New(p, time.Hour, nil)

	const n = 8
	var wg sync.WaitGroup
	results := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			flagged, err := c.Lookup(context.Background(), "0xbad")
			assert.NoError(t, err)
			results[i] = flagged
		}(i)
	}
	// Let the goroutines pile up on the in-flight fetch, then release it.
	time.Sleep(50 * time.Millisecond)
	close(p.block)
	wg.Wait()

	for _, r := range results {
		assert.True(t, r)
	}
	assert.EqualValues(t, 1, p.calls.Load())
}

func TestAnnotateSetsAdvisoryFlag(t *testing.T) {
	p := &fakeProvider{data: map[string]bool{"0xaaa": true}}
	c := New(p, time.Hour, nil)

	tokens := []assets.Token{
		{Address: "0xAAA", Symbol: "BAD"},
		{Address: "0xbbb", Symbol: "OK"},
	}
	tokens = c.Annotate(context.Background(), tokens)
	assert.True(t, tokens[0].Flagged)
	assert.False(t, tokens[1].Flagged)
}

func TestStats(t *testing.T) {
	p := &fakeProvider{data: map[string]bool{"0xa": true, "0xb": true}}
	c := New(p, time.Hour, nil)

	s := c.Stats()
	assert.Zero(t, s.Size)
	assert.True(t, s.LastFetch.IsZero())

	now := time.Now()
	c.nowFn = func() time.Time { return now }
	_, err := c.Lookup(context.Background(), "0xa")
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	s = c.Stats()
	assert.Equal(t, 2, s.Size)
	assert.Equal(t, 10*time.Minute, s.CacheAge)
}
