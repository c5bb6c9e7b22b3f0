package hoyo

import (
	"context"
	"fmt"

	"hoyosweep/internal/game"
)

// RedeemStatus is the closed set of redemption outcomes.
type RedeemStatus int

const (
	RedeemOK RedeemStatus = iota
	// RedeemAlready: the code was already used on this account.
	RedeemAlready
	// RedeemInvalid: unknown or expired code.
	RedeemInvalid
	// RedeemCooldown: remote-imposed temporary block on this code.
	RedeemCooldown
	// RedeemFailed: any other remote-reported failure; Detail explains.
	RedeemFailed
)

// RedeemResult is the business outcome of one redemption attempt.
type RedeemResult struct {
	Status RedeemStatus
	Detail string
}

// RedeemCode redeems a promo code for the given game profile.
func (s *Session) RedeemCode(ctx context.Context, code string, ref *GameAccount) (RedeemResult, error) {
	env, err := s.get(ctx, s.game.RedeemHost(), game.RedeemPath, map[string]string{
		"cdkey":    code,
		"uid":      ref.UID,
		"region":   ref.Region,
		"game_biz": s.game.Biz(),
		"lang":     s.client.locale,
	}, nil)
	if err != nil {
		return RedeemResult{}, err
	}

	switch {
	case env.Retcode == retOK:
		return RedeemResult{Status: RedeemOK}, nil
	case env.Retcode == retRedeemClaimed, env.Retcode == retRedeemClaimed2:
		return RedeemResult{Status: RedeemAlready}, nil
	case env.Retcode == retRedeemInvalid, env.Retcode == retRedeemExpired:
		return RedeemResult{Status: RedeemInvalid, Detail: env.Message}, nil
	case env.Retcode == retRedeemCooldown:
		return RedeemResult{Status: RedeemCooldown}, nil
	case isCookieRetcode(env.Retcode):
		return RedeemResult{}, fmt.Errorf("%w: %s (retcode %d)", ErrInvalidCookie, env.Message, env.Retcode)
	default:
		return RedeemResult{Status: RedeemFailed, Detail: env.Message}, nil
	}
}
