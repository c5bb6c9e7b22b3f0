package report

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// maxChunk bounds one embed description. Discord rejects descriptions over
// 2000 characters; 1900 leaves headroom for the code fences.
const maxChunk = 1900

// Embed colors, hex without the leading #.
const (
	ColorSuccess = "00ff00"
	ColorError   = "ff0000"
	ColorRedeem  = "00ffff"
)

// Notifier posts embeds to one Discord webhook. A Notifier with an empty URL
// is disabled and drops every send silently.
type Notifier struct {
	http *resty.Client
	url  string
	log  *zap.Logger
}

// NewNotifier builds a Notifier for a webhook URL ("" = disabled).
func NewNotifier(url string, timeout time.Duration, log *zap.Logger) *Notifier {
	return &Notifier{
		http: resty.New().SetTimeout(timeout),
		url:  url,
		log:  log,
	}
}

// Enabled reports whether a webhook URL is configured.
func (n *Notifier) Enabled() bool { return n.url != "" }

type embed struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Color       int64       `json:"color"`
	Timestamp   string      `json:"timestamp"`
	Footer      embedFooter `json:"footer"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// SendChunked posts the lines as fenced code blocks, splitting into several
// messages so no description exceeds maxChunk. Delivery failures are logged,
// never propagated: reporting must not fail the run.
func (n *Notifier) SendChunked(ctx context.Context, title string, lines []string, color string) {
	if !n.Enabled() || len(lines) == 0 {
		return
	}

	var chunk strings.Builder
	chunk.WriteString("```\n")
	for _, line := range lines {
		if chunk.Len()+len(line) > maxChunk {
			chunk.WriteString("```")
			n.send(ctx, title, chunk.String(), color)
			chunk.Reset()
			chunk.WriteString("```\n")
		}
		chunk.WriteString(line)
		chunk.WriteString("\n")
	}
	if chunk.Len() > len("```\n") {
		chunk.WriteString("```")
		n.send(ctx, title, chunk.String(), color)
	}
}

func (n *Notifier) send(ctx context.Context, title, description, color string) {
	c, err := strconv.ParseInt(color, 16, 64)
	if err != nil {
		c = 0
	}
	payload := webhookPayload{Embeds: []embed{{
		Title:       title,
		Description: description,
		Color:       c,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Footer:      embedFooter{Text: "hoyosweep"},
	}}}

	resp, err := n.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(n.url)
	if err != nil {
		n.log.Error("webhook delivery failed", zap.String("title", title), zap.Error(err))
		return
	}
	if resp.IsError() {
		n.log.Error("webhook rejected",
			zap.String("title", title),
			zap.String("status", resp.Status()))
	}
}
