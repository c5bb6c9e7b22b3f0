// Package report classifies sweep outcomes into reporting buckets and
// renders them to the console table and the Discord webhook sink. The local
// table shows everything, suppressed rows included; webhook messages are
// deliberately lossy so one broken credential does not page once per game
// per code.
package report

import (
	"fmt"
)

// DailyDescriptor is the work descriptor for claim outcomes; redeem outcomes
// carry the code instead.
const DailyDescriptor = "daily"

// Status is the closed outcome taxonomy.
type Status int

const (
	StatusClaimed Status = iota
	StatusAlready
	StatusNoAccount
	StatusCookieError
	StatusCodeInvalid
	StatusCodeCooldown
	StatusFailed
	StatusRuntime
)

// String returns the glyph (or short tag) shown in tables and messages.
func (s Status) String() string {
	switch s {
	case StatusClaimed:
		return "✅"
	case StatusAlready:
		return "🟡"
	case StatusNoAccount:
		return "no_account"
	case StatusCookieError:
		return "cookie_err"
	case StatusCodeInvalid:
		return "☠"
	case StatusCodeCooldown:
		return "⏱"
	case StatusFailed:
		return "❌"
	default:
		return "ERR"
	}
}

// Bucket decides where an outcome is reported.
type Bucket int

const (
	// BucketSuppressed outcomes never leave the local table.
	BucketSuppressed Bucket = iota
	// BucketCookie outcomes feed the single cross-game digest.
	BucketCookie
	BucketSuccess
	BucketError
)

// Bucket is a total mapping; every status lands somewhere.
func (s Status) Bucket() Bucket {
	switch s {
	case StatusNoAccount:
		return BucketSuppressed
	case StatusCookieError:
		return BucketCookie
	case StatusClaimed, StatusAlready:
		return BucketSuccess
	default:
		return BucketError
	}
}

// Outcome is the result of applying one work item to one account. Exactly
// one exists per (item, account) pair per run.
type Outcome struct {
	Label      string // account label
	Descriptor string // code, or DailyDescriptor
	Status     Status
	UID        string // masked uid, or placeholder
	Day        string // claims only: "7 / 30"
	Reward     string // claims only: "Primogem x20"
	Detail     string // optional human detail for failures
	Success    bool
}

// Line renders the single webhook line for this outcome.
func (o Outcome) Line() string {
	ctx := o.UID
	if o.Descriptor != DailyDescriptor {
		ctx = o.Descriptor
	}
	line := fmt.Sprintf("%s %s (%s)", o.Status, o.Label, ctx)
	switch {
	case o.Status.Bucket() == BucketSuccess && o.Day != "":
		return fmt.Sprintf("%s: Day %s", line, o.Day)
	case o.Detail != "":
		return fmt.Sprintf("%s: %s", line, o.Detail)
	default:
		return line
	}
}

// CensorUID masks the middle of an in-game uid, keeping the leading digits
// and the last one.
func CensorUID(uid string) string {
	if len(uid) < 6 {
		return uid
	}
	return uid[:len(uid)-6] + "■■■■■" + uid[len(uid)-1:]
}
