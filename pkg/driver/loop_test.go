package driver

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/signboard/pkg/activity"
	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/cache"
	"github.com/travigo/signboard/pkg/fetcher"
	"github.com/travigo/signboard/pkg/layout"
	"github.com/travigo/signboard/pkg/timeutil"
)

type result struct {
	payload *board.Payload
	err     error
}

type scriptedProvider struct {
	results []result
	calls   int
}

func (s *scriptedProvider) Name() string {
	return "scripted"
}

func (s *scriptedProvider) Fetch(ctx context.Context) (*board.Payload, error) {
	s.calls++
	if len(s.results) == 0 {
		return nil, errors.New("script exhausted")
	}

	next := s.results[0]
	s.results = s.results[1:]
	return next.payload, next.err
}

type recordingSink struct {
	frames [][]string
	clears int
}

func (r *recordingSink) Show(rows []string) error {
	r.frames = append(r.frames, rows)
	return nil
}

func (r *recordingSink) Clear() error {
	r.clears++
	return nil
}

func (r *recordingSink) Close() error {
	return nil
}

func (r *recordingSink) last() []string {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

type panickingComposer struct{}

func (panickingComposer) Compose(layout.Grid, board.CacheState, time.Time) []string {
	panic("compose exploded")
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

var loopStart = time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC)

func lines(text ...string) *board.Payload {
	return &board.Payload{Lines: text}
}

func newLoop(provider fetcher.Provider, grace time.Duration) (*Loop, *recordingSink, *fakeClock) {
	clock := &fakeClock{now: loopStart}
	sink := &recordingSink{}

	tracker := cache.NewTracker(provider, nil)
	tracker.Clock = clock.Now

	loop := &Loop{
		Window:        activity.NewWindow(loopStart, "", grace),
		Tracker:       tracker,
		Composer:      &layout.TextComposer{Language: timeutil.English},
		Sink:          sink,
		Grid:          layout.Grid{Columns: 16, Rows: 2},
		Language:      timeutil.English,
		Tick:          2 * time.Second,
		RefreshNormal: 2 * time.Minute,
		RefreshFast:   30 * time.Second,
		Clock:         clock.Now,
	}

	return loop, sink, clock
}

func TestLoopKeepsLastDataOnServerError(t *testing.T) {
	provider := &scriptedProvider{results: []result{
		{payload: lines("10 CityA")},
		{err: &fetcher.RemoteError{StatusCode: 500, Message: "Internal Server Error"}},
	}}
	loop, sink, clock := newLoop(provider, time.Hour)

	wait := loop.Step(context.Background())
	assert.Equal(t, 2*time.Second, wait)
	require.Len(t, sink.frames, 1)
	fetchedAt := loop.Tracker.State().FetchedAt

	clock.Advance(3 * time.Minute)

	wait = loop.Step(context.Background())
	assert.Equal(t, cache.DefaultShortBackoff, wait)
	assert.Equal(t, 2, provider.calls)

	require.Len(t, sink.frames, 2)
	assert.Equal(t, sink.frames[0], sink.frames[1])
	assert.Equal(t, fetchedAt, loop.Tracker.State().FetchedAt)
}

func TestLoopShowsErrorWithoutData(t *testing.T) {
	provider := &scriptedProvider{results: []result{
		{err: &fetcher.TransportError{Cause: errors.New("connection refused")}},
	}}
	loop, sink, _ := newLoop(provider, time.Hour)

	wait := loop.Step(context.Background())
	assert.Equal(t, cache.DefaultMediumBackoff, wait)
	require.Len(t, sink.frames, 1)
	assert.True(t, strings.HasPrefix(sink.last()[0], "Error:"))
}

func TestLoopClearsOnceWhenIdle(t *testing.T) {
	provider := &scriptedProvider{results: []result{{payload: lines("hello")}}}
	loop, sink, clock := newLoop(provider, time.Minute)

	loop.Step(context.Background())
	assert.True(t, loop.Active())
	assert.Equal(t, activity.TriggerStartup, loop.Trigger())

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 2*time.Second, loop.Step(context.Background()))
	assert.False(t, loop.Active())
	assert.Equal(t, 1, sink.clears)

	loop.Step(context.Background())
	assert.Equal(t, 1, sink.clears)
	assert.Len(t, sink.frames, 1)
	assert.Equal(t, 1, provider.calls)
}

func TestLoopButtonPressForcesRefresh(t *testing.T) {
	provider := &scriptedProvider{results: []result{
		{payload: lines("first")},
		{payload: lines("second")},
	}}
	loop, sink, clock := newLoop(provider, time.Minute)

	loop.Step(context.Background())

	clock.Advance(90 * time.Second)
	loop.Step(context.Background())
	assert.False(t, loop.Active())

	loop.Window.Press(clock.Now())
	loop.Step(context.Background())

	assert.Equal(t, activity.TriggerButtonPress, loop.Trigger())
	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, "second", strings.TrimSpace(sink.last()[0]))

	// Fresh again under the fast interval, the same press does not refetch
	clock.Advance(10 * time.Second)
	loop.Step(context.Background())
	assert.Equal(t, 2, provider.calls)
}

func TestLoopRecoversFromPanics(t *testing.T) {
	provider := &scriptedProvider{results: []result{{payload: lines("x")}}}
	loop, _, _ := newLoop(provider, time.Hour)
	loop.Composer = panickingComposer{}

	assert.NotPanics(t, func() {
		loop.Step(context.Background())
	})
}

func TestLoopReportsGateErrorOnce(t *testing.T) {
	var output bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&output)
	defer func() { log.Logger = previous }()

	provider := &scriptedProvider{results: []result{{payload: lines("x")}}}
	loop, _, clock := newLoop(provider, time.Minute)
	loop.Window.ActiveHours = "not a schedule"
	clock.Advance(2 * time.Minute)

	for i := 0; i < 3; i++ {
		loop.Step(context.Background())
		clock.Advance(time.Second)
	}

	assert.Equal(t, 1, strings.Count(output.String(), "Active hours trigger disabled"))
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	provider := &scriptedProvider{results: []result{{payload: lines("x")}}}
	loop, sink, _ := newLoop(provider, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())

	var sleeps []time.Duration
	loop.Sleep = func(ctx context.Context, d time.Duration) {
		sleeps = append(sleeps, d)
		cancel()
	}

	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}

	assert.Equal(t, []time.Duration{2 * time.Second}, sleeps)
	assert.Len(t, sink.frames, 1)
}
