package fetcher

import (
	"context"

	"github.com/travigo/signboard/pkg/board"
)

// Provider performs a single fetch attempt against one data source.
// Implementations never retry; repetition is owned by the cache tracker.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) (*board.Payload, error)
}
