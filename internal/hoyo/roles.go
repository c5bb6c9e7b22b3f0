package hoyo

import (
	"context"
	"fmt"

	"hoyosweep/internal/game"
)

// GameAccount is one in-game profile bound to a HoYoLAB account.
type GameAccount struct {
	UID      string `json:"game_uid"`
	Nickname string `json:"nickname"`
	Level    int    `json:"level"`
	Region   string `json:"region"`
}

// ResolveAccount returns the profile matching the session's game, or nil
// when the account has no presence there.
func (s *Session) ResolveAccount(ctx context.Context) (*GameAccount, error) {
	var data struct {
		List []GameAccount `json:"list"`
	}
	env, err := s.get(ctx, game.RolesHost, game.RolesPath, map[string]string{
		"game_biz": s.game.Biz(),
	}, &data)
	if err != nil {
		return nil, err
	}
	if env.Retcode != retOK {
		if isCookieRetcode(env.Retcode) {
			return nil, fmt.Errorf("%w: %s (retcode %d)", ErrInvalidCookie, env.Message, env.Retcode)
		}
		return nil, &APIError{Retcode: env.Retcode, Message: env.Message}
	}
	if len(data.List) == 0 {
		return nil, nil
	}
	return &data.List[0], nil
}
