package runner

import (
	"context"
	"sync"

	"hoyosweep/internal/account"
	"hoyosweep/internal/config"
	"hoyosweep/internal/game"
	"hoyosweep/internal/hoyo"
)

// Offline fakes for the runner's collaborators. One fake per interface,
// shared by the daily and redeem tests.

type fakeAccounts struct {
	accts []account.Account
	err   error
	calls int
}

func (f *fakeAccounts) Fetch(ctx context.Context) ([]account.Account, error) {
	f.calls++
	return f.accts, f.err
}

type fakeCodes struct {
	active map[game.Game][]string
	err    error
}

func (f *fakeCodes) Active(ctx context.Context, g game.Game) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.active[g], nil
}

type fakeSession struct {
	claim    hoyo.ClaimResult
	claimErr error
	day      int
	rewards  []hoyo.Reward
	ref      *hoyo.GameAccount
	refErr   error
	redeem   func(code string) (hoyo.RedeemResult, error)
}

func (s *fakeSession) ClaimDaily(ctx context.Context) (hoyo.ClaimResult, error) {
	return s.claim, s.claimErr
}

func (s *fakeSession) RedeemCode(ctx context.Context, code string, ref *hoyo.GameAccount) (hoyo.RedeemResult, error) {
	if s.redeem != nil {
		return s.redeem(code)
	}
	return hoyo.RedeemResult{Status: hoyo.RedeemOK}, nil
}

func (s *fakeSession) RewardDay(ctx context.Context) (int, error) {
	return s.day, nil
}

func (s *fakeSession) MonthlyRewards(ctx context.Context) ([]hoyo.Reward, error) {
	return s.rewards, nil
}

func (s *fakeSession) ResolveAccount(ctx context.Context) (*hoyo.GameAccount, error) {
	return s.ref, s.refErr
}

type fakeOpener struct {
	mu       sync.Mutex
	sessions map[string]*fakeSession
	openErr  map[string]error
	opens    int
}

func (f *fakeOpener) Open(acct account.Account, g game.Game) (Session, error) {
	f.mu.Lock()
	f.opens++
	f.mu.Unlock()
	if err := f.openErr[acct.Label]; err != nil {
		return nil, err
	}
	return f.sessions[acct.Label], nil
}

type fakeLedger struct {
	mu       sync.Mutex
	used     map[game.Game]map[string]struct{}
	recorded map[game.Game][][]string
	loadErr  error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		used:     make(map[game.Game]map[string]struct{}),
		recorded: make(map[game.Game][][]string),
	}
}

func (f *fakeLedger) markUsed(g game.Game, codes ...string) {
	if f.used[g] == nil {
		f.used[g] = make(map[string]struct{})
	}
	for _, c := range codes {
		f.used[g][c] = struct{}{}
	}
}

func (f *fakeLedger) Load(g game.Game) (map[string]struct{}, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make(map[string]struct{}, len(f.used[g]))
	for c := range f.used[g] {
		out[c] = struct{}{}
	}
	return out, nil
}

func (f *fakeLedger) Record(g game.Game, codes []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded[g] = append(f.recorded[g], codes)
	return nil
}

type sentMessage struct {
	Title string
	Lines []string
	Color string
}

type fakeNotifier struct {
	mu    sync.Mutex
	sends []sentMessage
}

func (f *fakeNotifier) SendChunked(ctx context.Context, title string, lines []string, color string) {
	if len(lines) == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, sentMessage{Title: title, Lines: lines, Color: color})
}

func (f *fakeNotifier) byTitle(title string) []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMessage
	for _, s := range f.sends {
		if s.Title == title {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeNotifier) allLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, s := range f.sends {
		out = append(out, s.Lines...)
	}
	return out
}

// genshinOnlyConfig keeps tests to a single game unless they opt in to more.
func genshinOnlyConfig() *config.Config {
	return &config.Config{
		Locale:      "en-us",
		MaxParallel: 4,
		NoStarRail:  true,
		NoZZZ:       true,
	}
}
