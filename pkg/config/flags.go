package config

import (
	"github.com/urfave/cli/v2"
)

func CommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "YAML file with defaults beneath flags and environment",
			EnvVars: []string{"SIGNBOARD_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "refresh",
			Usage:   "data refresh interval while idle or in active hours",
			EnvVars: []string{"SIGNBOARD_REFRESH"},
		},
		&cli.StringFlag{
			Name:    "refresh-fast",
			Usage:   "data refresh interval after a button press",
			EnvVars: []string{"SIGNBOARD_REFRESH_FAST"},
		},
		&cli.StringFlag{
			Name:    "tick",
			Usage:   "screen redraw interval",
			EnvVars: []string{"SIGNBOARD_TICK"},
		},
		&cli.StringFlag{
			Name:    "grace",
			Usage:   "how long the display stays on after start or a button press",
			EnvVars: []string{"SIGNBOARD_GRACE"},
		},
		&cli.StringFlag{
			Name:    "active-hours",
			Usage:   "cron expression or \"<hours> <weekdays|weekends|daily>\" when the display is on",
			EnvVars: []string{"SIGNBOARD_ACTIVE_HOURS", "ACTIVE_HOURS"},
		},
		&cli.StringFlag{
			Name:    "language",
			Usage:   "sv or en",
			EnvVars: []string{"SIGNBOARD_LANGUAGE"},
		},
		&cli.StringFlag{
			Name:    "http-timeout",
			Usage:   "timeout of provider requests",
			EnvVars: []string{"SIGNBOARD_HTTP_TIMEOUT"},
		},
		&cli.BoolFlag{
			Name:    "backoff-escalate",
			Usage:   "double backoff waits on repeated failures",
			EnvVars: []string{"SIGNBOARD_BACKOFF_ESCALATE"},
		},
		&cli.StringFlag{
			Name:    "sink",
			Usage:   "console or framebuffer",
			EnvVars: []string{"SIGNBOARD_SINK"},
		},
		&cli.IntFlag{
			Name:    "width",
			Usage:   "framebuffer width in pixels",
			EnvVars: []string{"SIGNBOARD_WIDTH"},
		},
		&cli.IntFlag{
			Name:    "height",
			Usage:   "framebuffer height in pixels",
			EnvVars: []string{"SIGNBOARD_HEIGHT"},
		},
		&cli.StringFlag{
			Name:    "font",
			Usage:   "framebuffer font (tomthumb, picopixel, org01, freemono9)",
			EnvVars: []string{"SIGNBOARD_FONT"},
		},
		&cli.StringFlag{
			Name:    "output",
			Usage:   "PNG file the framebuffer publishes frames to",
			EnvVars: []string{"SIGNBOARD_OUTPUT"},
		},
		&cli.IntFlag{
			Name:    "columns",
			Usage:   "console width in characters",
			EnvVars: []string{"SIGNBOARD_COLUMNS"},
		},
		&cli.IntFlag{
			Name:    "rows",
			Usage:   "console height in rows",
			EnvVars: []string{"SIGNBOARD_ROWS"},
		},
		&cli.StringFlag{
			Name:    "listen",
			Usage:   "listen address of the button HTTP endpoint, empty disables it",
			EnvVars: []string{"SIGNBOARD_LISTEN"},
		},
		&cli.StringFlag{
			Name:    "gpio",
			Usage:   "sysfs gpio value file of the button, empty disables it",
			EnvVars: []string{"SIGNBOARD_GPIO"},
		},
		&cli.BoolFlag{
			Name:    "signal",
			Usage:   "press the button on SIGUSR1",
			EnvVars: []string{"SIGNBOARD_SIGNAL"},
		},
	}
}

func DeparturesFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "SL realtime departures API key",
			EnvVars: []string{"SIGNBOARD_API_KEY", "REALTIME_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "site-id",
			Usage:   "SL site id",
			EnvVars: []string{"SIGNBOARD_SITE_ID", "SL_SITE_ID"},
		},
		&cli.StringFlag{
			Name:    "sl-url",
			Usage:   "SL API base URL",
			EnvVars: []string{"SIGNBOARD_SL_URL"},
		},
		&cli.IntFlag{
			Name:    "time-window",
			Usage:   "minutes ahead to request departures for",
			EnvVars: []string{"SIGNBOARD_TIME_WINDOW"},
		},
		&cli.StringSliceFlag{
			Name:    "modes",
			Usage:   "transport modes to show (Metros, Buses, Trains, Trams, Ships)",
			EnvVars: []string{"SIGNBOARD_MODES"},
		},
		&cli.IntFlag{
			Name:    "direction",
			Usage:   "preferred direction shown in full (1 or 2)",
			EnvVars: []string{"SIGNBOARD_DIRECTION"},
		},
		&cli.IntFlag{
			Name:    "preferred-cap",
			Usage:   "maximum rows of the preferred direction",
			EnvVars: []string{"SIGNBOARD_PREFERRED_CAP"},
		},
		&cli.IntFlag{
			Name:    "alert-threshold",
			Usage:   "deviations above this severity are shown",
			EnvVars: []string{"SIGNBOARD_ALERT_THRESHOLD"},
		},
	}
}

func WasteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "street",
			Usage:   "street name as known to SRV",
			EnvVars: []string{"SIGNBOARD_STREET", "SRV_STREETNAME"},
		},
		&cli.StringFlag{
			Name:    "item",
			Usage:   "SRV collection item",
			EnvVars: []string{"SIGNBOARD_ITEM", "SRV_ITEM"},
		},
		&cli.StringFlag{
			Name:    "srv-url",
			Usage:   "SRV collection schedule URL",
			EnvVars: []string{"SIGNBOARD_SRV_URL"},
		},
		&cli.BoolFlag{
			Name:    "flash",
			Usage:   "flash the display when a collection is within a day",
			EnvVars: []string{"SIGNBOARD_FLASH"},
		},
	}
}

func TextFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Usage:   "text file to show, one row per line",
			EnvVars: []string{"SIGNBOARD_TEXT_FILE"},
		},
	}
}

// Flags is everything a variant's run command accepts
func Flags(variant Variant) []cli.Flag {
	flags := CommonFlags()

	switch variant {
	case VariantDepartures:
		flags = append(flags, DeparturesFlags()...)
	case VariantWaste:
		flags = append(flags, WasteFlags()...)
	case VariantText:
		flags = append(flags, TextFlags()...)
	}

	return flags
}

// Load builds the configuration of a variant: variant defaults, then the YAML file, then flags and environment
func Load(c *cli.Context, variant Variant) (*Config, error) {
	cfg := VariantDefaults(variant)

	if path := c.String("config"); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := Apply(c, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(variant); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Apply overrides cfg with every flag that was set on the command line or through the environment
func Apply(c *cli.Context, cfg *Config) error {
	durations := map[string]*Duration{
		"refresh":      &cfg.RefreshNormal,
		"refresh-fast": &cfg.RefreshFast,
		"tick":         &cfg.Tick,
		"grace":        &cfg.GracePeriod,
		"http-timeout": &cfg.HTTPTimeout,
	}
	for name, target := range durations {
		if !c.IsSet(name) {
			continue
		}

		parsed, err := ParseDuration(c.String(name))
		if err != nil {
			return err
		}
		*target = Duration(parsed)
	}

	strings := map[string]*string{
		"active-hours": &cfg.ActiveHours,
		"language":     &cfg.Language,
		"sink":         &cfg.Display.Sink,
		"font":         &cfg.Display.Font,
		"output":       &cfg.Display.Output,
		"listen":       &cfg.Button.Listen,
		"gpio":         &cfg.Button.GPIOPath,
		"api-key":      &cfg.Departures.APIKey,
		"site-id":      &cfg.Departures.SiteID,
		"sl-url":       &cfg.Departures.BaseURL,
		"street":       &cfg.Waste.StreetName,
		"item":         &cfg.Waste.Item,
		"srv-url":      &cfg.Waste.BaseURL,
		"file":         &cfg.Text.Path,
	}
	for name, target := range strings {
		if c.IsSet(name) {
			*target = c.String(name)
		}
	}

	ints := map[string]*int{
		"width":           &cfg.Display.Width,
		"height":          &cfg.Display.Height,
		"columns":         &cfg.Display.Columns,
		"rows":            &cfg.Display.Rows,
		"time-window":     &cfg.Departures.TimeWindow,
		"direction":       &cfg.Departures.PreferredDirection,
		"preferred-cap":   &cfg.Departures.PreferredCap,
		"alert-threshold": &cfg.Departures.AlertThreshold,
	}
	for name, target := range ints {
		if c.IsSet(name) {
			*target = c.Int(name)
		}
	}

	bools := map[string]*bool{
		"backoff-escalate": &cfg.EscalateBackoff,
		"signal":           &cfg.Button.Signal,
		"flash":            &cfg.Waste.Flash,
	}
	for name, target := range bools {
		if c.IsSet(name) {
			*target = c.Bool(name)
		}
	}

	if c.IsSet("modes") {
		cfg.Departures.Modes = c.StringSlice("modes")
	}

	return nil
}
