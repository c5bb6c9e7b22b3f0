package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hoyosweep/internal/account"
	"hoyosweep/internal/batch"
	"hoyosweep/internal/game"
	"hoyosweep/internal/hoyo"
	"hoyosweep/internal/report"
)

// Daily claims the login reward for every account in every enabled game.
func (r *Runner) Daily(ctx context.Context) error {
	accounts, err := r.Accounts.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("daily run: %w", err)
	}
	if len(accounts) == 0 {
		r.Log.Warn("no accounts to process")
		return nil
	}
	r.Log.Info("starting daily sweep",
		zap.Int("accounts", len(accounts)),
		zap.Int("max_parallel", r.Cfg.MaxParallel))

	ex := batch.Executor{MaxParallel: r.Cfg.MaxParallel, Pause: r.Cfg.BatchPause}
	cache := hoyo.NewCatalogCache()
	agg := report.NewAggregator()
	var sections []string

	for _, g := range r.Cfg.EnabledGames() {
		g := g
		outcomes := batch.Sweep(ctx, ex, []string{report.DailyDescriptor}, accounts,
			func(ctx context.Context, _ string, acct account.Account) report.Outcome {
				return r.claimOne(ctx, g, acct, cache)
			},
			func(_ string, acct account.Account, recovered any) report.Outcome {
				r.Log.Error("claim task panicked",
					zap.String("game", g.String()),
					zap.String("account", acct.Label),
					zap.Any("panic", recovered))
				o := newClaimOutcome(acct)
				o.Status = report.StatusRuntime
				o.Detail = fmt.Sprint(recovered)
				return o
			})

		tb := report.NewTable("🎮 "+g.String(), "Account", "UID", "Day", "Status", "Reward")
		for _, o := range outcomes {
			tb.AddRow(o.Label, o.UID, o.Day, o.Status.String(), o.Reward)
		}
		sections = append(sections, tb.Render())

		success, errs := agg.Partition(outcomes)
		r.DailyHook.SendChunked(ctx, "Daily Check-In - "+g.String(), success, report.ColorSuccess)
		r.DailyHook.SendChunked(ctx, "⚠️ Daily Error - "+g.String(), errs, report.ColorError)
	}

	if line := agg.CookieAlertLine(); line != "" {
		r.DailyHook.SendChunked(ctx, "⚠️ Account Alert", []string{line}, report.ColorError)
	}

	fmt.Fprint(r.Out, report.Panel("Daily Report - "+timestamp(), sections))
	return nil
}

func newClaimOutcome(acct account.Account) report.Outcome {
	return report.Outcome{
		Label:      acct.Label,
		Descriptor: report.DailyDescriptor,
		UID:        unknownField,
		Day:        unknownField,
		Reward:     unknownField,
	}
}

// claimOne walks one account through the claim state machine. Every path
// ends in an outcome; nothing escapes to the batch coordinator.
func (r *Runner) claimOne(ctx context.Context, g game.Game, acct account.Account, cache *hoyo.CatalogCache) report.Outcome {
	o := newClaimOutcome(acct)

	sess, err := r.Opener.Open(acct, g)
	if err != nil {
		o.Status = report.StatusCookieError
		return o
	}

	res, err := sess.ClaimDaily(ctx)
	if err != nil {
		return r.claimFault(o, g, err)
	}
	switch res.Status {
	case hoyo.ClaimClaimed:
		o.Status = report.StatusClaimed
	case hoyo.ClaimAlready:
		o.Status = report.StatusAlready
	case hoyo.ClaimNoAccount:
		o.Status = report.StatusNoAccount
		return o
	case hoyo.ClaimFailed:
		r.Log.Warn("claim failed",
			zap.String("game", g.String()),
			zap.String("account", acct.Label),
			zap.String("detail", res.Detail))
		o.Status = report.StatusFailed
		o.Detail = res.Detail
		return o
	}

	day, err := sess.RewardDay(ctx)
	if err != nil {
		return r.claimFault(o, g, err)
	}
	rewards, err := cache.Get(ctx, g, sess.MonthlyRewards)
	if err != nil {
		return r.claimFault(o, g, err)
	}
	o.Day = fmt.Sprintf("%d / %d", day, daysInMonth(time.Now()))
	if day >= 1 && day <= len(rewards) {
		o.Reward = rewards[day-1].String()
	}

	ref, err := sess.ResolveAccount(ctx)
	if err != nil {
		return r.claimFault(o, g, err)
	}
	if ref != nil {
		o.UID = report.CensorUID(ref.UID)
	} else {
		o.UID = "Unknown"
	}
	o.Success = true
	return o
}

// claimFault finalizes an outcome on a session error. The claim itself may
// already have gone through; the run still reports the pair as faulted so
// the operator looks at it.
func (r *Runner) claimFault(o report.Outcome, g game.Game, err error) report.Outcome {
	o.Status = faultStatus(err)
	if o.Status == report.StatusRuntime {
		r.Log.Warn("claim runtime fault",
			zap.String("game", g.String()),
			zap.String("account", o.Label),
			zap.Error(err))
		o.Detail = err.Error()
	}
	return o
}
