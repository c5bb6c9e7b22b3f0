package hoyo

import (
	"errors"
	"fmt"
)

// envelope is the common HoYoLAB response wrapper. Business failures arrive
// as HTTP 200 with a non-zero retcode.
type envelope struct {
	Retcode int    `json:"retcode"`
	Message string `json:"message"`
}

// Known retcodes. The remote taxonomy is stable; anything unlisted is a
// generic business failure.
const (
	retOK            = 0
	retAlreadySigned = -5003
	retNoGameAccount = -10002

	retRedeemClaimed  = -2017
	retRedeemClaimed2 = -2018
	retRedeemExpired  = -2001
	retRedeemInvalid  = -2003
	retRedeemCooldown = -2016
)

// cookieRetcodes are credential failures: terminal for the account, never
// retried within a run.
var cookieRetcodes = map[int]struct{}{
	-100:  {},
	-1071: {},
	10001: {},
	10103: {},
}

// ErrInvalidCookie marks credential failures, whether the blob was malformed
// locally or rejected remotely.
var ErrInvalidCookie = errors.New("invalid cookie")

// APIError is a remote-reported failure that is neither a known business
// outcome nor a credential problem.
type APIError struct {
	Retcode int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hoyolab error %d: %s", e.Retcode, e.Message)
}

func isCookieRetcode(ret int) bool {
	_, ok := cookieRetcodes[ret]
	return ok
}
