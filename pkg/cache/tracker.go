package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/fetcher"
)

// Tracker owns the cached payload of one provider and decides when it is stale.
// It is not safe for concurrent use; the render loop is its only caller.
type Tracker struct {
	Provider fetcher.Provider
	Backoff  *BackoffPolicy
	Clock    func() time.Time

	state       board.CacheState
	invalidated bool
}

func NewTracker(provider fetcher.Provider, policy *BackoffPolicy) *Tracker {
	if policy == nil {
		policy = DefaultBackoffPolicy()
	}

	return &Tracker{
		Provider: provider,
		Backoff:  policy,
		Clock:    time.Now,
	}
}

func (t *Tracker) now() time.Time {
	if t.Clock == nil {
		return time.Now()
	}
	return t.Clock()
}

// State is a read-only view of the cache
func (t *Tracker) State() board.CacheState {
	return t.state
}

// IsFresh reports whether the cached payload can be served without fetching
func (t *Tracker) IsFresh(now time.Time, refreshInterval time.Duration) bool {
	if t.state.Payload == nil || t.invalidated {
		return false
	}

	return now.Sub(t.state.FetchedAt) < refreshInterval
}

// Invalidate makes the next GetOrRefresh fetch while still keeping the last payload
func (t *Tracker) Invalidate() {
	t.invalidated = true
}

// GetOrRefresh returns the cached payload when fresh, otherwise attempts exactly one fetch.
// Failures never discard the last known payload; they are reported as a backoff directive.
func (t *Tracker) GetOrRefresh(ctx context.Context, refreshInterval time.Duration) (*board.Payload, Directive) {
	if t.IsFresh(t.now(), refreshInterval) {
		return t.state.Payload, Directive{}
	}

	startTime := t.now()
	payload, err := t.Provider.Fetch(ctx)

	if ctx.Err() != nil {
		return t.state.Payload, Directive{}
	}

	if err == nil && payload.IsEmpty() {
		err = ErrEmptyResult
	}

	if err != nil {
		tier := Classify(err)
		directive := Directive{
			Tier: tier,
			Wait: t.Backoff.Next(tier),
			Err:  err,
		}

		log.Warn().
			Err(err).
			Str("provider", t.Provider.Name()).
			Str("backoff", tier.String()).
			Dur("wait", directive.Wait).
			Bool("cached", t.state.Payload != nil).
			Msg("Fetch failed, keeping last known data")

		return t.state.Payload, directive
	}

	now := t.now()
	t.state = board.CacheState{
		Payload:   payload,
		FetchedAt: now,
	}
	t.invalidated = false
	t.Backoff.Reset()

	log.Info().
		Str("provider", t.Provider.Name()).
		Int("entries", payload.Len()).
		Str("latency", now.Sub(startTime).String()).
		Msg("Refreshed data")

	return payload, Directive{}
}
