// Package ledger persists the set of promo codes already attempted per game,
// so the same code is not redeemed across runs. Storage is one append-only
// text file per game, one code per line; membership is the only query, so
// duplicate lines are harmless.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hoyosweep/internal/game"
)

// Ledger stores used codes under a directory, one file per game.
type Ledger struct {
	dir string
}

// New returns a Ledger rooted at dir. The directory is created lazily on the
// first Record.
func New(dir string) *Ledger {
	return &Ledger{dir: dir}
}

func (l *Ledger) path(g game.Game) string {
	return filepath.Join(l.dir, g.Slug()+".txt")
}

// Load reads the persisted set for a game. A missing file or directory is an
// empty set, not an error.
func (l *Ledger) Load(g game.Game) (map[string]struct{}, error) {
	data, err := os.ReadFile(l.path(g))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("load ledger for %s: %w", g, err)
	}

	used := map[string]struct{}{}
	for _, line := range strings.Split(string(data), "\n") {
		if code := strings.TrimSpace(line); code != "" {
			used[code] = struct{}{}
		}
	}
	return used, nil
}

// AlreadyUsed reports whether a single code is recorded for a game.
func (l *Ledger) AlreadyUsed(g game.Game, code string) (bool, error) {
	used, err := l.Load(g)
	if err != nil {
		return false, err
	}
	_, ok := used[code]
	return ok, nil
}

// Record appends codes to the game's file. Called once per game per run
// after the full sweep, including codes whose redemption failed: an invalid
// or expired code must not be retried forever.
func (l *Ledger) Record(g game.Game, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	f, err := os.OpenFile(l.path(g), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger for %s: %w", g, err)
	}
	defer f.Close()

	for _, code := range codes {
		if _, err := fmt.Fprintln(f, code); err != nil {
			return fmt.Errorf("append ledger for %s: %w", g, err)
		}
	}
	return nil
}

// Reset clears the persisted set for a game. Operator maintenance only.
func (l *Ledger) Reset(g game.Game) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	if err := os.WriteFile(l.path(g), nil, 0o644); err != nil {
		return fmt.Errorf("reset ledger for %s: %w", g, err)
	}
	return nil
}
