// Package poller drives the deletion change feed: it reads the audit log on
// a fixed interval and hands each entry to a handler once.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/hasherdb/internal/logging"
	"github.com/dmitrijs2005/hasherdb/internal/server/models"
)

// Reader is the deletion feed, satisfied by services.DeletionReader.
type Reader interface {
	ListRecentDeletions(ctx context.Context, lookback time.Duration) ([]models.DeletionAuditEntry, error)
}

// Handler consumes new deletion entries. A returned error leaves the batch
// undelivered, so it is offered again on the next poll.
type Handler interface {
	HandleDeletions(ctx context.Context, entries []models.DeletionAuditEntry) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, entries []models.DeletionAuditEntry) error

func (f HandlerFunc) HandleDeletions(ctx context.Context, entries []models.DeletionAuditEntry) error {
	return f(ctx, entries)
}

var ErrInvalidSchedule = errors.New("poll interval and lookback must be positive")

// Poller is not safe for concurrent use; run one per reader.
type Poller struct {
	reader   Reader
	handler  Handler
	logger   logging.Logger
	interval time.Duration
	lookback time.Duration

	// seen holds delivered entry ids until they age out of the window.
	seen map[int64]time.Time
	now  func() time.Time
}

// New builds a Poller. The reader's window overlaps between polls only when
// lookback exceeds interval plus commit skew; a tighter setting is allowed
// but logged, since entries may then be missed.
func New(reader Reader, handler Handler, logger logging.Logger, interval, lookback time.Duration) (*Poller, error) {
	if interval <= 0 || lookback <= 0 {
		return nil, ErrInvalidSchedule
	}

	if lookback <= interval {
		logger.Warn(context.Background(), "lookback does not exceed poll interval, deletions may be missed",
			"lookback", lookback, "interval", interval)
	}

	return &Poller{
		reader:   reader,
		handler:  handler,
		logger:   logger,
		interval: interval,
		lookback: lookback,
		seen:     make(map[int64]time.Time),
		now:      time.Now,
	}, nil
}

// Poll runs a single read and delivers entries not delivered before.
// It returns how many entries were handed to the handler.
func (p *Poller) Poll(ctx context.Context) (int, error) {
	entries, err := p.reader.ListRecentDeletions(ctx, p.lookback)
	if err != nil {
		return 0, err
	}

	fresh := make([]models.DeletionAuditEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := p.seen[e.ID]; !ok {
			fresh = append(fresh, e)
		}
	}

	p.logger.Debug(ctx, "deletions polled", "read", len(entries), "new", len(fresh))

	if len(fresh) > 0 {
		if err := p.handler.HandleDeletions(ctx, fresh); err != nil {
			return 0, err
		}
		for _, e := range fresh {
			p.seen[e.ID] = e.ChangedOn
		}
	}

	p.prune()
	return len(fresh), nil
}

// prune forgets entries that are a full window past the read window and
// therefore cannot be returned again.
func (p *Poller) prune() {
	cutoff := p.now().UTC().Add(-2 * p.lookback)
	for id, changedOn := range p.seen {
		if changedOn.Before(cutoff) {
			delete(p.seen, id)
		}
	}
}

// Run polls immediately and then every interval until ctx is cancelled.
// Failed polls are logged and retried on the next tick.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info(ctx, "deletion poller started", "interval", p.interval, "lookback", p.lookback)

	for {
		if n, err := p.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error(ctx, "deletion poll failed", "error", err)
		} else if n > 0 {
			p.logger.Info(ctx, "deletions delivered", "count", n)
		}

		select {
		case <-ctx.Done():
			p.logger.Info(ctx, "deletion poller stopped")
			return nil
		case <-ticker.C:
		}
	}
}
