// Package dispatch fans a composed message out to every enabled channel exactly once per day.
package dispatch

import (
	"context"
	"time"

	"github.com/julianstephens/growthdash/internal/accountability"
	"github.com/julianstephens/growthdash/internal/logger"
	"github.com/julianstephens/growthdash/internal/notifier"
)

// Result reports what happened on one channel
type Result struct {
	Channel string
	Sent    bool
	Skipped bool // already in the ledger
	Err     error
}

type Dispatcher struct {
	channels []notifier.Channel
	ledger   Ledger
	dryRun   bool
	nowFunc  func() time.Time
}

func New(channels []notifier.Channel, ledger Ledger) *Dispatcher {
	return &Dispatcher{channels: channels, ledger: ledger, nowFunc: time.Now}
}

// WithDryRun makes Dispatch report what it would send without sending or recording
func (d *Dispatcher) WithDryRun(dryRun bool) *Dispatcher {
	d.dryRun = dryRun
	return d
}

// Channels returns the names of the configured channels
func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.channels))
	for _, ch := range d.channels {
		names = append(names, ch.Name())
	}
	return names
}

// Dispatch sends msg on every channel that has not already delivered its ledger kind for msg.Date.
// A failing channel is logged and left unrecorded so the next run retries it; the others still send.
func (d *Dispatcher) Dispatch(ctx context.Context, msg accountability.Message) []Result {
	kind := msg.LedgerKind()
	results := make([]Result, 0, len(d.channels))

	for _, ch := range d.channels {
		res := Result{Channel: ch.Name()}
		clog := logger.With("date", msg.Date, "kind", kind, "channel", ch.Name())

		sent, err := d.ledger.Sent(ctx, msg.Date, kind, ch.Name())
		if err != nil {
			clog.Error("failed to read notification ledger", "error", err)
			res.Err = err
			results = append(results, res)
			continue
		}
		if sent {
			clog.Debug("notification already sent")
			res.Skipped = true
			results = append(results, res)
			continue
		}

		if d.dryRun {
			clog.Info("dry run: would send notification", "tier", msg.Tier)
			results = append(results, res)
			continue
		}

		if err := ch.Send(ctx, msg); err != nil {
			clog.Error("failed to send notification", "error", err)
			res.Err = err
			results = append(results, res)
			continue
		}
		res.Sent = true

		if err := d.ledger.Record(ctx, msg.Date, kind, ch.Name(), d.nowFunc()); err != nil {
			clog.Error("failed to record notification", "error", err)
			res.Err = err
		} else {
			clog.Info("notification sent", "tier", msg.Tier)
		}
		results = append(results, res)
	}
	return results
}
