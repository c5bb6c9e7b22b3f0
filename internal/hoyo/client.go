// Package hoyo is the remote client adapter for the HoYoLAB API: it wraps
// one account's cookie into a session exposing the daily claim, code
// redemption and account lookup operations, with every remote outcome mapped
// to a closed variant type.
package hoyo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"hoyosweep/internal/account"
	"hoyosweep/internal/game"
)

// Client builds sessions. It carries no per-account state; one client serves
// a whole run.
type Client struct {
	http   *resty.Client
	locale string
	log    *zap.Logger

	// baseURL, when set, replaces every endpoint's scheme+host. Used by
	// tests to point all games at one fake server.
	baseURL string
}

// NewClient returns a Client with the given locale and per-call timeout.
func NewClient(locale string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		http:   resty.New().SetTimeout(timeout),
		locale: locale,
		log:    log,
	}
}

// Session is one account bound to one game.
type Session struct {
	client *Client
	game   game.Game
	cookie string
	label  string
}

// Open validates the account's cookie blob and binds it to a game. A blob
// missing the id/token pair fails here, wrapped in ErrInvalidCookie; the
// caller reports it as a terminal cookie error and never retries.
func (c *Client) Open(acct account.Account, g game.Game) (*Session, error) {
	cookie, err := normalizeCookie(acct.Cookie)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}
	return &Session{client: c, game: g, cookie: cookie, label: acct.Label}, nil
}

// cookie pairs accepted as a credential. At least one complete pair must be
// present.
var cookiePairs = [][2]string{
	{"account_id_v2", "cookie_token_v2"},
	{"account_id", "cookie_token"},
	{"ltuid_v2", "ltoken_v2"},
	{"ltuid", "ltoken"},
}

func normalizeCookie(blob string) (string, error) {
	kv := map[string]string{}
	for _, part := range strings.Split(blob, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		kv[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	for _, pair := range cookiePairs {
		if kv[pair[0]] != "" && kv[pair[1]] != "" {
			return strings.TrimSpace(blob), nil
		}
	}
	return "", fmt.Errorf("cookie blob has no usable id/token pair")
}

// url builds the absolute endpoint URL, honoring the test override.
func (c *Client) url(host, path string) string {
	if c.baseURL != "" {
		return c.baseURL + path
	}
	return host + path
}

// get performs a GET against a HoYoLAB endpoint and decodes the envelope.
// data may be nil when the caller only needs the retcode.
func (s *Session) get(ctx context.Context, host, path string, query map[string]string, data any) (*envelope, error) {
	return s.do(ctx, resty.MethodGet, host, path, query, data)
}

func (s *Session) post(ctx context.Context, host, path string, query map[string]string, data any) (*envelope, error) {
	return s.do(ctx, resty.MethodPost, host, path, query, data)
}

func (s *Session) do(ctx context.Context, method, host, path string, query map[string]string, data any) (*envelope, error) {
	var body struct {
		envelope
		Data json.RawMessage `json:"data"`
	}
	req := s.client.http.R().
		SetContext(ctx).
		SetHeader("Cookie", s.cookie).
		SetHeader("Accept-Language", s.client.locale).
		SetQueryParams(query).
		SetResult(&body).
		ForceContentType("application/json")

	resp, err := req.Execute(method, s.client.url(host, path))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s %s: status %s", method, path, resp.Status())
	}
	if body.Retcode == retOK && data != nil && len(body.Data) > 0 {
		if err := json.Unmarshal(body.Data, data); err != nil {
			return nil, fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}
	return &body.envelope, nil
}
