// Package config loads runtime settings from a .env file and the process
// environment. Environment variables always win over the file, matching the
// original deployment where secrets are injected by the scheduler.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"hoyosweep/internal/game"
)

// Default endpoints and tunables.
const (
	DefaultCodeFeedURL = "https://github.com/haiueom/hoyo-code/raw/refs/heads/main/"
	DefaultUsedDir     = "used"
	DefaultMaxParallel = 10
	DefaultBatchPause  = 5 * time.Second
	DefaultHTTPTimeout = 30 * time.Second
)

// Config holds all hoyosweep configuration.
type Config struct {
	Locale      string
	MaxParallel int

	// Account store
	CookieAPI string
	SecretKey string

	// Webhooks (empty = disabled)
	DailyWebhook  string
	RedeemWebhook string

	// Per-game disable flags
	NoGenshin  bool
	NoStarRail bool
	NoZZZ      bool

	// Batch tuning
	BatchPause  time.Duration
	HTTPTimeout time.Duration

	// Storage / feeds
	UsedDir     string
	CodeFeedURL string
}

// Load reads the optional .env file at path (or ./.env when path is empty)
// and applies environment overrides on top of defaults. A missing default
// file is not an error; the environment alone may be enough.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Locale:      "en-us",
		MaxParallel: DefaultMaxParallel,
		BatchPause:  DefaultBatchPause,
		HTTPTimeout: DefaultHTTPTimeout,
		UsedDir:     DefaultUsedDir,
		CodeFeedURL: DefaultCodeFeedURL,
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides folds the process environment into the config.
func (c *Config) applyEnvOverrides() {
	setString(&c.Locale, "LOCALE")
	setInt(&c.MaxParallel, "MAX_PARALLEL")
	setString(&c.CookieAPI, "COOKIE_API")
	setString(&c.SecretKey, "SECRET_KEY")
	setString(&c.DailyWebhook, "DC_WH_DAILY")
	setString(&c.RedeemWebhook, "DC_WH_REDEEM")
	setBool(&c.NoGenshin, "NO_GENSHIN")
	setBool(&c.NoStarRail, "NO_STARRAIL")
	setBool(&c.NoZZZ, "NO_ZZZ")
	setDuration(&c.BatchPause, "BATCH_DELAY")
	setDuration(&c.HTTPTimeout, "HTTP_TIMEOUT")
	setString(&c.UsedDir, "USED_DIR")
	setString(&c.CodeFeedURL, "CODE_FEED_URL")

	if c.MaxParallel < 1 {
		c.MaxParallel = 1
	}
}

// Validate checks the settings a run cannot start without.
func (c *Config) Validate() error {
	if c.CookieAPI == "" {
		return fmt.Errorf("COOKIE_API is not set")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is not set")
	}
	return nil
}

// EnabledGames returns the games not excluded by the NO_* flags, in the
// registry's stable order.
func (c *Config) EnabledGames() []game.Game {
	disabled := map[game.Game]bool{
		game.Genshin:  c.NoGenshin,
		game.StarRail: c.NoStarRail,
		game.ZZZ:      c.NoZZZ,
	}
	var out []game.Game
	for _, g := range game.All() {
		if !disabled[g] {
			out = append(out, g)
		}
	}
	return out
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			*dst = b
		}
	}
}

// setDuration accepts either a Go duration string ("5s") or a bare number of
// seconds, which is what the original .env files carried.
func setDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(n) * time.Second
	}
}
