package signboard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/travigo/signboard/pkg/activity"
	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/cache"
	"github.com/travigo/signboard/pkg/config"
	"github.com/travigo/signboard/pkg/display"
	"github.com/travigo/signboard/pkg/driver"
	"github.com/travigo/signboard/pkg/fetcher"
	"github.com/travigo/signboard/pkg/layout"
	"github.com/travigo/signboard/pkg/timeutil"
)

// Board is one fully wired signboard
type Board struct {
	Config   *config.Config
	Variant  config.Variant
	Language *timeutil.Language

	Provider fetcher.Provider
	Composer layout.Composer
	Sink     display.Sink
	Grid     layout.Grid
	Window   *activity.Window
	Loop     *driver.Loop
}

func NewProvider(cfg *config.Config, variant config.Variant, language *timeutil.Language) (fetcher.Provider, error) {
	client := fetcher.NewClient(cfg.HTTPTimeout.Std())

	switch variant {
	case config.VariantDepartures:
		return &fetcher.SLDepartures{
			Client:     client,
			BaseURL:    cfg.Departures.BaseURL,
			APIKey:     cfg.Departures.APIKey,
			SiteID:     cfg.Departures.SiteID,
			TimeWindow: cfg.Departures.TimeWindow,
			Modes:      cfg.Departures.Modes,
			Location:   time.Local,
		}, nil
	case config.VariantWaste:
		return &fetcher.SRVCollections{
			Client:     client,
			BaseURL:    cfg.Waste.BaseURL,
			StreetName: cfg.Waste.StreetName,
			Item:       cfg.Waste.Item,
			Language:   language,
		}, nil
	case config.VariantText:
		return &fetcher.TextFile{Path: cfg.Text.Path}, nil
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}
}

func NewComposer(cfg *config.Config, variant config.Variant, language *timeutil.Language) (layout.Composer, error) {
	switch variant {
	case config.VariantDepartures:
		return &layout.DepartureComposer{
			PreferredDirection: board.Direction(cfg.Departures.PreferredDirection),
			PreferredCap:       cfg.Departures.PreferredCap,
			AlertThreshold:     cfg.Departures.AlertThreshold,
			Language:           language,
		}, nil
	case config.VariantWaste:
		return &layout.ServiceComposer{
			Language: language,
			Flash:    cfg.Waste.Flash,
		}, nil
	case config.VariantText:
		return &layout.TextComposer{Language: language}, nil
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}
}

// NewSink opens the configured display and works out its character grid
func NewSink(cfg *config.Config) (display.Sink, layout.Grid, error) {
	switch strings.ToLower(cfg.Display.Sink) {
	case config.SinkFramebuffer:
		font, err := layout.FontByName(cfg.Display.Font)
		if err != nil {
			return nil, layout.Grid{}, err
		}

		framebuffer, err := display.NewFramebuffer(cfg.Display.Output, cfg.Display.Width, cfg.Display.Height, font)
		if err != nil {
			return nil, layout.Grid{}, err
		}

		grid, err := framebuffer.Grid()
		if err != nil {
			return nil, layout.Grid{}, err
		}

		return framebuffer, grid, nil
	case config.SinkConsole:
		grid := layout.Grid{Columns: cfg.Display.Columns, Rows: cfg.Display.Rows}
		return display.NewConsole(os.Stdout, cfg.Display.ClearScreen), grid, nil
	default:
		return nil, layout.Grid{}, fmt.Errorf("unknown display sink %q", cfg.Display.Sink)
	}
}

func New(cfg *config.Config, variant config.Variant, processStart time.Time) (*Board, error) {
	language, err := timeutil.LanguageByCode(cfg.Language)
	if err != nil {
		return nil, err
	}

	provider, err := NewProvider(cfg, variant, language)
	if err != nil {
		return nil, err
	}

	composer, err := NewComposer(cfg, variant, language)
	if err != nil {
		return nil, err
	}

	sink, grid, err := NewSink(cfg)
	if err != nil {
		return nil, err
	}

	policy := cache.DefaultBackoffPolicy()
	policy.Escalate = cfg.EscalateBackoff

	window := activity.NewWindow(processStart, cfg.ActiveHours, cfg.GracePeriod.Std())

	loop := &driver.Loop{
		Window:        window,
		Tracker:       cache.NewTracker(provider, policy),
		Composer:      composer,
		Sink:          sink,
		Grid:          grid,
		Language:      language,
		Tick:          cfg.Tick.Std(),
		RefreshNormal: cfg.RefreshNormal.Std(),
		RefreshFast:   cfg.RefreshFast.Std(),
	}

	return &Board{
		Config:   cfg,
		Variant:  variant,
		Language: language,
		Provider: provider,
		Composer: composer,
		Sink:     sink,
		Grid:     grid,
		Window:   window,
		Loop:     loop,
	}, nil
}
