// Package game defines the closed set of supported HoYoverse games and the
// per-game wiring (endpoints, act ids, business identifiers) the rest of the
// tool keys everything on.
package game

import (
	"fmt"
	"strings"
)

// Game identifies one supported game.
type Game int

const (
	Genshin Game = iota
	StarRail
	ZZZ
)

// info carries the static per-game wiring. Hosts and paths are kept separate
// so tests can point every endpoint at a single fake server.
type info struct {
	name       string // display name
	key        string // CLI shorthand
	slug       string // ledger file / codes feed path segment
	signHost   string
	signPath   string // base path; /home, /info and /sign are appended
	actID      string
	redeemHost string
	biz        string // game_biz for role lookup and redemption
}

var games = map[Game]info{
	Genshin: {
		name:       "Genshin",
		key:        "gi",
		slug:       "genshin",
		signHost:   "https://sg-hk4e-api.hoyolab.com",
		signPath:   "/event/sol",
		actID:      "e202102251931481",
		redeemHost: "https://sg-hk4e-api.hoyolab.com",
		biz:        "hk4e_global",
	},
	StarRail: {
		name:       "Star Rail",
		key:        "sr",
		slug:       "starrail",
		signHost:   "https://sg-public-api.hoyolab.com",
		signPath:   "/event/luna/os",
		actID:      "e202303301540311",
		redeemHost: "https://sg-hkrpg-api.hoyolab.com",
		biz:        "hkrpg_global",
	},
	ZZZ: {
		name:       "ZZZ",
		key:        "zz",
		slug:       "zzz",
		signHost:   "https://sg-public-api.hoyolab.com",
		signPath:   "/event/luna/zzz/os",
		actID:      "e202406031448091",
		redeemHost: "https://public-operation-nap.hoyoverse.com",
		biz:        "nap_global",
	},
}

// All returns the supported games in stable order.
func All() []Game {
	return []Game{Genshin, StarRail, ZZZ}
}

// ParseKey resolves a CLI shorthand ("gi", "sr", "zz") or a full slug.
func ParseKey(key string) (Game, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, g := range All() {
		if k == games[g].key || k == games[g].slug {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown game %q", key)
}

func (g Game) String() string { return games[g].name }

// Key returns the CLI shorthand for the game.
func (g Game) Key() string { return games[g].key }

// Slug returns the identifier used for ledger files and the codes feed.
func (g Game) Slug() string { return games[g].slug }

// ActID returns the daily check-in activity id.
func (g Game) ActID() string { return games[g].actID }

// Biz returns the game_biz identifier for account binding and redemption.
func (g Game) Biz() string { return games[g].biz }

// SignHost returns the host serving the daily check-in endpoints.
func (g Game) SignHost() string { return games[g].signHost }

// SignPath returns the daily check-in endpoint path for the given operation
// ("home", "info" or "sign").
func (g Game) SignPath(op string) string { return games[g].signPath + "/" + op }

// RedeemHost returns the host serving code redemption.
func (g Game) RedeemHost() string { return games[g].redeemHost }

// RedeemPath is the code redemption endpoint path, shared across games.
const RedeemPath = "/common/apicdkey/api/webExchangeCdkey"

// RolesHost and RolesPath locate the cross-game account binding endpoint.
const (
	RolesHost = "https://api-account-os.hoyolab.com"
	RolesPath = "/binding/api/getUserGameRolesByCookie"
)

var validLocales = map[string]struct{}{
	"zh-cn": {}, "zh-tw": {}, "de-de": {}, "en-us": {}, "es-es": {},
	"fr-fr": {}, "id-id": {}, "ja-jp": {}, "ko-kr": {}, "pt-pt": {},
	"ru-ru": {}, "th-th": {}, "vi-vn": {},
}

// NormalizeLocale lowercases the locale and falls back to en-us when it is
// not one HoYoLAB supports. The second return reports whether the input was
// accepted as-is.
func NormalizeLocale(locale string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(locale))
	if _, ok := validLocales[l]; ok {
		return l, true
	}
	return "en-us", false
}
