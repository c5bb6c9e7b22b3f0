package report

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Aggregator folds per-game outcomes into webhook line lists and collects
// cookie errors across all games into one set, reported exactly once at the
// end of the run. Safe for concurrent Partition calls.
type Aggregator struct {
	mu     sync.Mutex
	cookie map[string]struct{}
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{cookie: make(map[string]struct{})}
}

// Partition splits outcomes into success and error webhook lines. Suppressed
// outcomes are dropped; cookie errors are absorbed into the cross-game set
// instead of producing a line.
func (a *Aggregator) Partition(outcomes []Outcome) (success, errs []string) {
	for _, o := range outcomes {
		switch o.Status.Bucket() {
		case BucketSuppressed:
			continue
		case BucketCookie:
			a.mu.Lock()
			a.cookie[o.Label] = struct{}{}
			a.mu.Unlock()
		case BucketSuccess:
			success = append(success, o.Line())
		case BucketError:
			errs = append(errs, o.Line())
		}
	}
	return success, errs
}

// CookieLabels returns the sorted labels with credential failures.
func (a *Aggregator) CookieLabels() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	labels := make([]string, 0, len(a.cookie))
	for l := range a.cookie {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// CookieAlertLine renders the one-per-run digest line, or "" when every
// credential worked.
func (a *Aggregator) CookieAlertLine() string {
	labels := a.CookieLabels()
	if len(labels) == 0 {
		return ""
	}
	return fmt.Sprintf("❌ Invalid Cookies (%d): %s", len(labels), strings.Join(labels, ", "))
}
