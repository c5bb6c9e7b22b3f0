package batch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type pairResult struct {
	item string
	acct string
	err  bool
}

func noFallback(item, acct string, _ any) pairResult {
	return pairResult{item: item, acct: acct, err: true}
}

func TestOneResultPerPair(t *testing.T) {
	items := []string{"A", "B", "C"}
	accounts := []string{"a1", "a2", "a3", "a4"}

	results := Sweep(context.Background(), Executor{MaxParallel: 2}, items, accounts,
		func(ctx context.Context, item, acct string) pairResult {
			return pairResult{item: item, acct: acct}
		}, noFallback)

	require.Len(t, results, len(items)*len(accounts))

	seen := map[string]int{}
	for _, r := range results {
		seen[r.item+"/"+r.acct]++
	}
	for pair, n := range seen {
		assert.Equal(t, 1, n, "pair %s", pair)
	}
}

func TestConcurrencyBound(t *testing.T) {
	const limit = 3
	var inFlight, peak atomic.Int32

	Sweep(context.Background(), Executor{MaxParallel: limit}, []int{0}, make([]struct{}, 20),
		func(ctx context.Context, _ int, _ struct{}) struct{} {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return struct{}{}
		},
		func(_ int, _ struct{}, _ any) struct{} { return struct{}{} })

	assert.LessOrEqual(t, peak.Load(), int32(limit))
	assert.Positive(t, peak.Load())
}

func TestItemsRunSequentially(t *testing.T) {
	var mu sync.Mutex
	var order []string

	items := []string{"first", "second", "third"}
	Sweep(context.Background(), Executor{MaxParallel: 4}, items, []int{1, 2},
		func(ctx context.Context, item string, acct int) string {
			mu.Lock()
			order = append(order, item)
			mu.Unlock()
			return item
		},
		func(item string, _ int, _ any) string { return item })

	// Both tasks of an item finish before the next item starts, so the
	// trace is a run of "first"s, then "second"s, then "third"s.
	require.Len(t, order, 6)
	assert.True(t, sort.SliceIsSorted(order, func(i, j int) bool {
		rank := map[string]int{"first": 0, "second": 1, "third": 2}
		return rank[order[i]] < rank[order[j]]
	}), "items interleaved: %v", order)
}

func TestPanicIsolation(t *testing.T) {
	accounts := []string{"ok1", "boom", "ok2"}

	results := Sweep(context.Background(), Executor{MaxParallel: 2}, []string{"item"}, accounts,
		func(ctx context.Context, item, acct string) pairResult {
			if acct == "boom" {
				panic(fmt.Sprintf("task for %s exploded", acct))
			}
			return pairResult{item: item, acct: acct}
		}, noFallback)

	require.Len(t, results, 3)
	var failed int
	for _, r := range results {
		if r.err {
			failed++
			assert.Equal(t, "boom", r.acct)
		}
	}
	assert.Equal(t, 1, failed, "only the panicking pair falls back")
}

func TestPauseBetweenItems(t *testing.T) {
	const pause = 60 * time.Millisecond
	start := time.Now()

	Sweep(context.Background(), Executor{MaxParallel: 1, Pause: pause}, []int{1, 2, 3}, []int{0},
		func(ctx context.Context, _, _ int) struct{} { return struct{}{} },
		func(_, _ int, _ any) struct{} { return struct{}{} })

	// Two gaps between three items; no pause after the last.
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 2*pause)
	assert.Less(t, elapsed, 4*pause)
}

func TestCancellationStopsAdmission(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var executed atomic.Int32
	results := Sweep(ctx, Executor{MaxParallel: 1, Pause: time.Hour}, []int{1, 2}, []int{0},
		func(ctx context.Context, item, _ int) int {
			executed.Add(1)
			cancel() // cancel during the first item; the pause must not block
			return item
		},
		func(item, _ int, _ any) int { return item })

	assert.Equal(t, int32(1), executed.Load())
	assert.Len(t, results, 1, "results from completed items are kept")
}
