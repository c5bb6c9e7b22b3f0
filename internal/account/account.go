// Package account fetches the fleet of stored accounts from the remote
// credential store. Cookies are opaque blobs here; only the adapter in
// internal/hoyo ever looks inside them.
package account

import (
	"fmt"
	"regexp"
	"strings"
)

// Account is one stored account: a display label unique within a run and the
// raw cookie blob handed unmodified to the remote client adapter.
type Account struct {
	Label  string
	Cookie string
}

var nonWord = regexp.MustCompile(`\W+`)

// FormatLabel uppercases a display name and collapses non-word runs to a
// single underscore, so labels are safe in log lines and webhook messages.
func FormatLabel(name string) string {
	s := nonWord.ReplaceAllString(strings.TrimSpace(name), "_")
	s = strings.Trim(s, "_")
	return strings.ToUpper(s)
}

// CookieBlob assembles the credential blob from the store's token pair.
func CookieBlob(accountID, cookieToken string) string {
	return fmt.Sprintf("account_id_v2=%s; cookie_token_v2=%s", accountID, cookieToken)
}
