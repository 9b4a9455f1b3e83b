package signboard

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/button"
)

// Run drives the board until ctx is cancelled. The sink is closed on every exit path.
func (b *Board) Run(ctx context.Context) error {
	defer func() {
		if err := b.Sink.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close display")
		}
	}()

	log.Info().
		Str("variant", string(b.Variant)).
		Str("provider", b.Provider.Name()).
		Str("activehours", b.Config.ActiveHours).
		Str("language", b.Language.Code).
		Msg("Starting signboard")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var serveErr error
	var wg conc.WaitGroup

	if b.Config.Button.Listen != "" {
		server := &button.Server{Window: b.Window, Status: b.Loop}
		wg.Go(func() {
			if err := server.Serve(ctx, b.Config.Button.Listen); err != nil {
				serveErr = err
				cancel()
			}
		})
	}

	if b.Config.Button.Signal {
		wg.Go(func() {
			button.ListenSignal(ctx, b.Window)
		})
	}

	if b.Config.Button.GPIOPath != "" {
		poller := &button.GPIOPoller{
			Path:     b.Config.Button.GPIOPath,
			Interval: b.Config.Button.GPIOInterval.Std(),
			Window:   b.Window,
		}
		wg.Go(func() {
			poller.Run(ctx)
		})
	}

	wg.Go(func() {
		b.Loop.Run(ctx)
		cancel()
	})

	wg.Wait()

	return serveErr
}

// Dump fetches once and prints both the payload and the frame it would produce
func (b *Board) Dump(ctx context.Context, out io.Writer) error {
	payload, err := b.Provider.Fetch(ctx)
	if err != nil {
		return err
	}

	pretty.Fprintf(out, "%# v\n", payload)

	now := time.Now()
	state := board.CacheState{Payload: payload, FetchedAt: now}
	for _, row := range b.Composer.Compose(b.Grid, state, now) {
		fmt.Fprintf(out, "|%s|\n", row)
	}

	return nil
}
