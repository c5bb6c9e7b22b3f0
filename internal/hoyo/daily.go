package hoyo

import (
	"context"
	"fmt"
)

// ClaimStatus is the closed set of daily-claim outcomes the remote reports.
type ClaimStatus int

const (
	// ClaimClaimed: first claim of the day.
	ClaimClaimed ClaimStatus = iota
	// ClaimAlready: already claimed today; idempotent, not an error.
	ClaimAlready
	// ClaimNoAccount: the account has no profile in this game.
	ClaimNoAccount
	// ClaimFailed: any other remote-reported failure; Detail explains.
	ClaimFailed
)

// ClaimResult is the business outcome of a daily claim. Credential and
// transport failures travel on the error return instead.
type ClaimResult struct {
	Status ClaimStatus
	Detail string
}

// Reward is one entry of the monthly reward catalog.
type Reward struct {
	Name  string `json:"name"`
	Count int    `json:"cnt"`
}

func (r Reward) String() string {
	return fmt.Sprintf("%s x%d", r.Name, r.Count)
}

// ClaimDaily attempts the daily check-in for the session's game.
func (s *Session) ClaimDaily(ctx context.Context) (ClaimResult, error) {
	env, err := s.post(ctx, s.game.SignHost(), s.game.SignPath("sign"), map[string]string{
		"act_id": s.game.ActID(),
		"lang":   s.client.locale,
	}, nil)
	if err != nil {
		return ClaimResult{}, err
	}

	switch {
	case env.Retcode == retOK:
		return ClaimResult{Status: ClaimClaimed}, nil
	case env.Retcode == retAlreadySigned:
		return ClaimResult{Status: ClaimAlready}, nil
	case env.Retcode == retNoGameAccount:
		return ClaimResult{Status: ClaimNoAccount}, nil
	case isCookieRetcode(env.Retcode):
		return ClaimResult{}, fmt.Errorf("%w: %s (retcode %d)", ErrInvalidCookie, env.Message, env.Retcode)
	default:
		return ClaimResult{Status: ClaimFailed, Detail: env.Message}, nil
	}
}

// RewardDay returns the 1-based day index within the current claim cycle.
func (s *Session) RewardDay(ctx context.Context) (int, error) {
	var data struct {
		TotalSignDay int `json:"total_sign_day"`
	}
	env, err := s.get(ctx, s.game.SignHost(), s.game.SignPath("info"), map[string]string{
		"act_id": s.game.ActID(),
		"lang":   s.client.locale,
	}, &data)
	if err != nil {
		return 0, err
	}
	if env.Retcode != retOK {
		if isCookieRetcode(env.Retcode) {
			return 0, fmt.Errorf("%w: %s (retcode %d)", ErrInvalidCookie, env.Message, env.Retcode)
		}
		return 0, &APIError{Retcode: env.Retcode, Message: env.Message}
	}
	return data.TotalSignDay, nil
}

// MonthlyRewards returns the ordered reward catalog for the current cycle.
// The catalog is account-independent; callers cache it per game via
// CatalogCache.
func (s *Session) MonthlyRewards(ctx context.Context) ([]Reward, error) {
	var data struct {
		Awards []Reward `json:"awards"`
	}
	env, err := s.get(ctx, s.game.SignHost(), s.game.SignPath("home"), map[string]string{
		"act_id": s.game.ActID(),
		"lang":   s.client.locale,
	}, &data)
	if err != nil {
		return nil, err
	}
	if env.Retcode != retOK {
		return nil, &APIError{Retcode: env.Retcode, Message: env.Message}
	}
	return data.Awards, nil
}
