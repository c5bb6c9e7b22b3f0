// Package batch runs the cross product of work items and accounts against a
// rate-limited remote service. Work items execute strictly in order, one at
// a time; within an item the accounts fan out under a concurrency cap, and a
// fixed pause separates consecutive items. Hammering many codes at one
// account in quick succession is the abuse signal the remote watches for;
// spreading items over time while parallelizing across independent accounts
// is safe.
package batch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Executor bounds a sweep. MaxParallel caps simultaneously in-flight
// (item, account) tasks; Pause is the fixed delay between work items.
type Executor struct {
	MaxParallel int
	Pause       time.Duration
}

// Sweep executes task for every (item, account) pair and returns exactly one
// result per pair, in (item, account) order. A task must not panic its
// siblings out of the batch: a recovered panic is converted through fallback
// into a result like any other.
//
// Cancelling ctx stops admission of further work items; results already
// produced are returned. In-flight tasks observe the cancellation through
// their own ctx and still return a result.
func Sweep[I, A, R any](
	ctx context.Context,
	ex Executor,
	items []I,
	accounts []A,
	task func(ctx context.Context, item I, acct A) R,
	fallback func(item I, acct A, recovered any) R,
) []R {
	limit := ex.MaxParallel
	if limit < 1 {
		limit = 1
	}

	results := make([]R, 0, len(items)*len(accounts))
	for idx, item := range items {
		res := make([]R, len(accounts))

		g := new(errgroup.Group)
		g.SetLimit(limit)
		for i, acct := range accounts {
			i, acct := i, acct
			g.Go(func() error {
				defer func() {
					if r := recover(); r != nil {
						res[i] = fallback(item, acct, r)
					}
				}()
				res[i] = task(ctx, item, acct)
				return nil
			})
		}
		_ = g.Wait() // tasks never return errors; Wait is the fan-in barrier

		results = append(results, res...)

		if idx == len(items)-1 {
			break
		}
		if !pace(ctx, ex.Pause) {
			break
		}
	}
	return results
}

// pace sleeps for the inter-item delay, returning false when the context is
// cancelled first.
func pace(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
