package driver

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/panics"
	"github.com/travigo/signboard/pkg/activity"
	"github.com/travigo/signboard/pkg/cache"
	"github.com/travigo/signboard/pkg/display"
	"github.com/travigo/signboard/pkg/layout"
	"github.com/travigo/signboard/pkg/timeutil"
)

const (
	DefaultTick          = 5 * time.Second
	DefaultRefreshNormal = 2 * time.Minute
	DefaultRefreshFast   = 30 * time.Second
)

// Loop is the single threaded render loop. Only the activity window is shared
// with other goroutines; everything else is owned by the loop.
type Loop struct {
	Window   *activity.Window
	Tracker  *cache.Tracker
	Composer layout.Composer
	Sink     display.Sink
	Grid     layout.Grid
	Language *timeutil.Language

	Tick          time.Duration
	RefreshNormal time.Duration
	RefreshFast   time.Duration

	Clock func() time.Time
	Sleep func(ctx context.Context, d time.Duration)

	active    atomic.Bool
	trigger   atomic.Int32
	seenPress time.Time
	gateError string
}

func (l *Loop) now() time.Time {
	if l.Clock == nil {
		return time.Now()
	}
	return l.Clock()
}

func (l *Loop) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	if l.Sleep != nil {
		l.Sleep(ctx, d)
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (l *Loop) tick() time.Duration {
	if l.Tick <= 0 {
		return DefaultTick
	}
	return l.Tick
}

func (l *Loop) refreshInterval(trigger activity.Trigger) time.Duration {
	if trigger == activity.TriggerButtonPress && l.RefreshFast > 0 {
		return l.RefreshFast
	}
	if l.RefreshNormal <= 0 {
		return DefaultRefreshNormal
	}
	return l.RefreshNormal
}

// Active reports whether the last tick rendered, safe from any goroutine
func (l *Loop) Active() bool {
	return l.active.Load()
}

// Trigger is what opened the gate on the last tick
func (l *Loop) Trigger() activity.Trigger {
	return activity.Trigger(l.trigger.Load())
}

// Run ticks until ctx is cancelled
func (l *Loop) Run(ctx context.Context) {
	log.Info().
		Dur("tick", l.tick()).
		Dur("refresh", l.refreshInterval(activity.TriggerNone)).
		Int("columns", l.Grid.Columns).
		Int("rows", l.Grid.Rows).
		Msg("Starting render loop")

	for ctx.Err() == nil {
		l.sleep(ctx, l.Step(ctx))
	}

	log.Info().Msg("Render loop stopped")
}

// Step runs one tick and returns how long to sleep before the next
func (l *Loop) Step(ctx context.Context) time.Duration {
	startTime := l.now()

	trigger, err := l.Window.Evaluate(startTime)
	l.reportGateError(err)
	l.trigger.Store(int32(trigger))

	if trigger == activity.TriggerNone {
		if l.active.Swap(false) {
			log.Info().Msg("Display going idle")
			if err := l.Sink.Clear(); err != nil {
				log.Error().Err(err).Msg("Failed to clear display")
			}
		}

		return l.tick()
	}

	if !l.active.Swap(true) {
		log.Info().Str("trigger", trigger.String()).Msg("Display waking up")
	}

	if press := l.Window.LastPress(); press.After(l.seenPress) {
		l.seenPress = press
		l.Tracker.Invalidate()
	}

	payload, directive := l.Tracker.GetOrRefresh(ctx, l.refreshInterval(trigger))
	if ctx.Err() != nil {
		return 0
	}

	l.render(directive, payload != nil, startTime)

	if directive.Active() {
		return directive.Wait
	}

	executionDuration := l.now().Sub(startTime)
	return l.tick() - executionDuration
}

func (l *Loop) render(directive cache.Directive, hasPayload bool, now time.Time) {
	recovered := panics.Try(func() {
		var rows []string
		if hasPayload {
			rows = l.Composer.Compose(l.Grid, l.Tracker.State(), now)
		} else {
			rows = layout.ErrorRows(l.Grid, directive.Err, l.Language)
		}

		if err := l.Sink.Show(rows); err != nil {
			log.Error().Err(err).Msg("Failed to show frame")
		}
	})

	if recovered != nil {
		log.Error().Err(recovered.AsError()).Msg("Recovered from panic while rendering")
	}
}

func (l *Loop) reportGateError(err error) {
	if err == nil {
		l.gateError = ""
		return
	}

	if err.Error() == l.gateError {
		return
	}

	l.gateError = err.Error()
	log.Error().Err(err).Str("activehours", l.Window.ActiveHours).Msg("Active hours trigger disabled")
}
