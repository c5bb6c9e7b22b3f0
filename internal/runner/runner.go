// Package runner orchestrates one run: fetch accounts, sweep the work items
// for each enabled game through the bounded executor, classify outcomes and
// hand them to the console and webhook sinks. Collaborators are narrow
// interfaces so a run is testable without the network.
package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"hoyosweep/internal/account"
	"hoyosweep/internal/codes"
	"hoyosweep/internal/config"
	"hoyosweep/internal/game"
	"hoyosweep/internal/hoyo"
	"hoyosweep/internal/ledger"
	"hoyosweep/internal/report"
)

// unknownField is the table placeholder for values a run never learned.
const unknownField = "❓"

// AccountSource supplies the accounts to process.
type AccountSource interface {
	Fetch(ctx context.Context) ([]account.Account, error)
}

// CodeSource supplies the currently active promo codes per game.
type CodeSource interface {
	Active(ctx context.Context, g game.Game) ([]string, error)
}

// Session is one account bound to one game, able to perform the remote
// operations of a sweep.
type Session interface {
	ClaimDaily(ctx context.Context) (hoyo.ClaimResult, error)
	RedeemCode(ctx context.Context, code string, ref *hoyo.GameAccount) (hoyo.RedeemResult, error)
	RewardDay(ctx context.Context) (int, error)
	MonthlyRewards(ctx context.Context) ([]hoyo.Reward, error)
	ResolveAccount(ctx context.Context) (*hoyo.GameAccount, error)
}

// SessionOpener turns an account's cookie into a Session.
type SessionOpener interface {
	Open(acct account.Account, g game.Game) (Session, error)
}

// CodeLedger is the persisted record of codes already attempted.
type CodeLedger interface {
	Load(g game.Game) (map[string]struct{}, error)
	Record(g game.Game, codes []string) error
}

// Notifier forwards report lines to a webhook sink.
type Notifier interface {
	SendChunked(ctx context.Context, title string, lines []string, color string)
}

// Runner holds everything one run needs.
type Runner struct {
	Cfg        *config.Config
	Log        *zap.Logger
	Accounts   AccountSource
	Codes      CodeSource
	Opener     SessionOpener
	Ledger     CodeLedger
	DailyHook  Notifier
	RedeemHook Notifier
	Out        io.Writer
}

// New wires a Runner against the real collaborators.
func New(cfg *config.Config, log *zap.Logger) *Runner {
	locale, ok := game.NormalizeLocale(cfg.Locale)
	if !ok {
		log.Warn("unsupported locale, using en-us", zap.String("locale", cfg.Locale))
	}
	client := hoyo.NewClient(locale, cfg.HTTPTimeout, log)

	return &Runner{
		Cfg:        cfg,
		Log:        log,
		Accounts:   account.NewStore(cfg.CookieAPI, cfg.SecretKey, cfg.HTTPTimeout, log),
		Codes:      codes.NewFeed(cfg.CodeFeedURL, cfg.HTTPTimeout, log),
		Opener:     ClientOpener{Client: client},
		Ledger:     ledger.New(cfg.UsedDir),
		DailyHook:  report.NewNotifier(cfg.DailyWebhook, cfg.HTTPTimeout, log),
		RedeemHook: report.NewNotifier(cfg.RedeemWebhook, cfg.HTTPTimeout, log),
		Out:        os.Stdout,
	}
}

// ClientOpener adapts *hoyo.Client to the SessionOpener interface.
type ClientOpener struct {
	Client *hoyo.Client
}

func (o ClientOpener) Open(acct account.Account, g game.Game) (Session, error) {
	s, err := o.Client.Open(acct, g)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// faultStatus maps a session error to the terminal outcome status: cookie
// failures aggregate, everything else (timeouts included) is a runtime
// fault.
func faultStatus(err error) report.Status {
	if errors.Is(err, hoyo.ErrInvalidCookie) {
		return report.StatusCookieError
	}
	return report.StatusRuntime
}

func timestamp() string {
	return time.Now().Format("2006-01-02 03:04:05 PM")
}

// dedupe drops repeated codes while preserving first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, c := range in {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

var _ SessionOpener = ClientOpener{}
