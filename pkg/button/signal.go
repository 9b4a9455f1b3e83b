package button

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/signboard/pkg/activity"
)

// ListenSignal presses the button whenever the process receives SIGUSR1
func ListenSignal(ctx context.Context, window *activity.Window) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGUSR1)
	defer signal.Stop(signals)

	for {
		select {
		case <-ctx.Done():
			return
		case <-signals:
			window.Press(time.Now())
			log.Info().Str("source", "signal").Msg("Button pressed")
		}
	}
}
