package account

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// storeResponse is the account store envelope.
type storeResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    []storeEntry `json:"data"`
}

type storeEntry struct {
	Name        string          `json:"name"`
	AccountID   json.RawMessage `json:"account_id"` // number upstream, tolerate strings
	CookieToken string          `json:"cookie_token"`
}

// Store fetches accounts from the credential API.
type Store struct {
	http   *resty.Client
	url    string
	secret string
	log    *zap.Logger
}

// NewStore builds a Store for the given endpoint and bearer secret.
func NewStore(url, secret string, timeout time.Duration, log *zap.Logger) *Store {
	return &Store{
		http:   resty.New().SetTimeout(timeout),
		url:    url,
		secret: secret,
		log:    log,
	}
}

// Fetch retrieves and normalizes the account list. Any transport failure or
// a non-success envelope is an error; the caller aborts the run, nothing has
// happened yet.
func (s *Store) Fetch(ctx context.Context) ([]Account, error) {
	var body storeResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetAuthToken(s.secret).
		SetResult(&body).
		ForceContentType("application/json").
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch accounts: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch accounts: status %s", resp.Status())
	}
	if !body.Success {
		msg := body.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("account store: %s", msg)
	}

	accounts := make([]Account, 0, len(body.Data))
	for idx, row := range body.Data {
		label := fmt.Sprintf("ACC%d_%s", idx+1, FormatLabel(row.Name))
		id := rawToString(row.AccountID)
		if id == "" || row.CookieToken == "" {
			s.log.Warn("skipping incomplete account row", zap.String("label", label))
			continue
		}
		accounts = append(accounts, Account{
			Label:  label,
			Cookie: CookieBlob(id, row.CookieToken),
		})
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Label < accounts[j].Label })
	return accounts, nil
}

// rawToString renders an account id that may arrive as a JSON number or a
// quoted string.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return fmt.Sprintf("%d", n)
	}
	return ""
}
