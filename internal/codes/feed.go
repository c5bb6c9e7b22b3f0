// Package codes fetches the per-game list of currently active promo codes
// from a public raw-file mirror. The feed has shipped both shapes over time,
// a bare string list and a list of objects, so both are accepted.
package codes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"hoyosweep/internal/game"
)

// Feed reads active codes per game.
type Feed struct {
	http    *resty.Client
	baseURL string
	log     *zap.Logger
}

// NewFeed builds a Feed against the given mirror base URL (trailing slash
// expected, see config.DefaultCodeFeedURL).
func NewFeed(baseURL string, timeout time.Duration, log *zap.Logger) *Feed {
	return &Feed{
		http:    resty.New().SetTimeout(timeout),
		baseURL: baseURL,
		log:     log,
	}
}

// Active fetches the current code list for one game. Errors are per game;
// the caller logs and carries on with the other games.
func (f *Feed) Active(ctx context.Context, g game.Game) ([]string, error) {
	resp, err := f.http.R().
		SetContext(ctx).
		Get(f.baseURL + g.Slug() + "/active.json")
	if err != nil {
		return nil, fmt.Errorf("fetch codes for %s: %w", g, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch codes for %s: status %s", g, resp.Status())
	}
	codes, err := decodeList(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode codes for %s: %w", g, err)
	}
	return codes, nil
}

func decodeList(data []byte) ([]string, error) {
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		return plain, nil
	}

	var wrapped []struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(wrapped))
	for _, w := range wrapped {
		if w.Code != "" {
			codes = append(codes, w.Code)
		}
	}
	return codes, nil
}
