package runner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hoyosweep/internal/account"
	"hoyosweep/internal/batch"
	"hoyosweep/internal/game"
	"hoyosweep/internal/hoyo"
	"hoyosweep/internal/report"
)

// Redeem applies promo codes across all accounts. requested maps games to
// explicitly supplied codes; auto merges in the active-codes feed; force
// bypasses the used-codes filter (the ledger is still updated afterward).
func (r *Runner) Redeem(ctx context.Context, requested map[game.Game][]string, auto, force bool) error {
	work := r.buildWork(ctx, requested, auto, force)
	if len(work) == 0 {
		r.Log.Info("nothing to redeem")
		return nil
	}

	accounts, err := r.Accounts.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("redeem run: %w", err)
	}
	if len(accounts) == 0 {
		r.Log.Warn("no accounts to process")
		return nil
	}

	ex := batch.Executor{MaxParallel: r.Cfg.MaxParallel, Pause: r.Cfg.BatchPause}
	agg := report.NewAggregator()
	var sections []string

	for _, g := range r.Cfg.EnabledGames() {
		codes := work[g]
		if len(codes) == 0 {
			continue
		}
		g := g
		r.Log.Info("redeeming",
			zap.String("game", g.String()),
			zap.Strings("codes", codes),
			zap.Int("accounts", len(accounts)))

		outcomes := batch.Sweep(ctx, ex, codes, accounts,
			func(ctx context.Context, code string, acct account.Account) report.Outcome {
				return r.redeemOne(ctx, g, code, acct)
			},
			func(code string, acct account.Account, recovered any) report.Outcome {
				r.Log.Error("redeem task panicked",
					zap.String("game", g.String()),
					zap.String("account", acct.Label),
					zap.String("code", code),
					zap.Any("panic", recovered))
				o := newRedeemOutcome(acct, code)
				o.Status = report.StatusRuntime
				o.Detail = fmt.Sprint(recovered)
				return o
			})

		// Record every attempted code, failures included: an invalid or
		// expired code must not come back run after run.
		if err := r.Ledger.Record(g, codes); err != nil {
			r.Log.Error("ledger update failed", zap.String("game", g.String()), zap.Error(err))
		}

		tb := report.NewTable("🎁 "+g.String(), "Account", "UID", "Code", "Status")
		for _, o := range outcomes {
			tb.AddRow(o.Label, o.UID, o.Descriptor, o.Status.String())
		}
		sections = append(sections, tb.Render())

		success, errs := agg.Partition(outcomes)
		r.RedeemHook.SendChunked(ctx, "Redeem - "+g.String(), success, report.ColorRedeem)
		r.RedeemHook.SendChunked(ctx, "⚠️ Redeem Error - "+g.String(), errs, report.ColorError)
	}

	if line := agg.CookieAlertLine(); line != "" {
		r.RedeemHook.SendChunked(ctx, "⚠️ Account Alert", []string{line}, report.ColorError)
	}

	fmt.Fprint(r.Out, report.Panel("Redeem Report - "+timestamp(), sections))
	return nil
}

// buildWork assembles the filtered per-game code lists. It runs before any
// account fetch: when the ledger filters everything out, the run makes no
// network call at all. Feed or ledger trouble for one game never blocks the
// others.
func (r *Runner) buildWork(ctx context.Context, requested map[game.Game][]string, auto, force bool) map[game.Game][]string {
	work := make(map[game.Game][]string)
	for _, g := range r.Cfg.EnabledGames() {
		codes := requested[g]
		if auto {
			active, err := r.Codes.Active(ctx, g)
			if err != nil {
				r.Log.Warn("active codes feed unavailable", zap.String("game", g.String()), zap.Error(err))
			} else {
				codes = append(codes, active...)
			}
		}
		codes = dedupe(codes)
		if len(codes) == 0 {
			continue
		}

		if !force {
			used, err := r.Ledger.Load(g)
			if err != nil {
				r.Log.Error("ledger unreadable, skipping game", zap.String("game", g.String()), zap.Error(err))
				continue
			}
			var fresh []string
			for _, c := range codes {
				if _, ok := used[c]; !ok {
					fresh = append(fresh, c)
				}
			}
			if dropped := len(codes) - len(fresh); dropped > 0 {
				r.Log.Info("skipping already redeemed codes",
					zap.String("game", g.String()), zap.Int("count", dropped))
			}
			codes = fresh
		}
		if len(codes) > 0 {
			work[g] = codes
		}
	}
	return work
}

func newRedeemOutcome(acct account.Account, code string) report.Outcome {
	return report.Outcome{
		Label:      acct.Label,
		Descriptor: code,
		UID:        unknownField,
	}
}

// redeemOne applies one code to one account. Every path ends in an outcome.
func (r *Runner) redeemOne(ctx context.Context, g game.Game, code string, acct account.Account) report.Outcome {
	o := newRedeemOutcome(acct, code)

	sess, err := r.Opener.Open(acct, g)
	if err != nil {
		o.Status = report.StatusCookieError
		return o
	}

	ref, err := sess.ResolveAccount(ctx)
	if err != nil {
		return r.redeemFault(o, g, err)
	}
	if ref == nil {
		o.Status = report.StatusNoAccount
		return o
	}
	o.UID = report.CensorUID(ref.UID)

	res, err := sess.RedeemCode(ctx, code, ref)
	if err != nil {
		return r.redeemFault(o, g, err)
	}
	switch res.Status {
	case hoyo.RedeemOK:
		o.Status = report.StatusClaimed
		o.Success = true
	case hoyo.RedeemAlready:
		o.Status = report.StatusAlready
		o.Success = true
	case hoyo.RedeemInvalid:
		o.Status = report.StatusCodeInvalid
		o.Detail = res.Detail
	case hoyo.RedeemCooldown:
		o.Status = report.StatusCodeCooldown
	case hoyo.RedeemFailed:
		r.Log.Warn("redeem failed",
			zap.String("game", g.String()),
			zap.String("account", acct.Label),
			zap.String("code", code),
			zap.String("detail", res.Detail))
		o.Status = report.StatusFailed
		o.Detail = res.Detail
	}
	return o
}

func (r *Runner) redeemFault(o report.Outcome, g game.Game, err error) report.Outcome {
	o.Status = faultStatus(err)
	if o.Status == report.StatusRuntime {
		r.Log.Warn("redeem runtime fault",
			zap.String("game", g.String()),
			zap.String("account", o.Label),
			zap.String("code", o.Descriptor),
			zap.Error(err))
		o.Detail = err.Error()
	}
	return o
}
