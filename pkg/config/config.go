package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/signboard/pkg/board"
	"github.com/travigo/signboard/pkg/fetcher"
	"github.com/travigo/signboard/pkg/timeutil"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

var ErrMissingOption = errors.New("missing required option")

type Variant string

const (
	VariantDepartures Variant = "departures"
	VariantWaste      Variant = "waste"
	VariantText       Variant = "text"
)

const (
	SinkConsole     = "console"
	SinkFramebuffer = "framebuffer"
)

type DisplayConfig struct {
	Sink        string `yaml:"sink"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Font        string `yaml:"font"`
	Output      string `yaml:"output"`
	Columns     int    `yaml:"columns"`
	Rows        int    `yaml:"rows"`
	ClearScreen bool   `yaml:"clear_screen"`
}

type ButtonConfig struct {
	Listen       string   `yaml:"listen"`
	GPIOPath     string   `yaml:"gpio_path"`
	GPIOInterval Duration `yaml:"gpio_interval"`
	Signal       bool     `yaml:"signal"`
}

type DeparturesConfig struct {
	APIKey             string   `yaml:"api_key"`
	SiteID             string   `yaml:"site_id"`
	BaseURL            string   `yaml:"base_url"`
	TimeWindow         int      `yaml:"time_window"`
	Modes              []string `yaml:"modes"`
	PreferredDirection int      `yaml:"preferred_direction"`
	PreferredCap       int      `yaml:"preferred_cap"`
	AlertThreshold     int      `yaml:"alert_threshold"`
}

type WasteConfig struct {
	StreetName string `yaml:"street_name"`
	Item       string `yaml:"item"`
	BaseURL    string `yaml:"base_url"`
	Flash      bool   `yaml:"flash"`
}

type TextConfig struct {
	Path string `yaml:"path"`
}

type Config struct {
	RefreshNormal   Duration `yaml:"refresh"`
	RefreshFast     Duration `yaml:"refresh_fast"`
	Tick            Duration `yaml:"tick"`
	GracePeriod     Duration `yaml:"grace_period"`
	ActiveHours     string   `yaml:"active_hours"`
	Language        string   `yaml:"language"`
	HTTPTimeout     Duration `yaml:"http_timeout"`
	EscalateBackoff bool     `yaml:"backoff_escalate"`

	Display    DisplayConfig    `yaml:"display"`
	Button     ButtonConfig     `yaml:"button"`
	Departures DeparturesConfig `yaml:"departures"`
	Waste      WasteConfig      `yaml:"waste"`
	Text       TextConfig       `yaml:"text"`
}

func Defaults() Config {
	return Config{
		RefreshNormal: Duration(2 * time.Minute),
		RefreshFast:   Duration(30 * time.Second),
		Tick:          Duration(5 * time.Second),
		GracePeriod:   Duration(2 * time.Minute),
		Language:      timeutil.Swedish.Code,
		HTTPTimeout:   Duration(10 * time.Second),

		Display: DisplayConfig{
			Sink:        SinkConsole,
			Width:       128,
			Height:      64,
			Font:        "tomthumb",
			Output:      "signboard.png",
			Columns:     32,
			Rows:        6,
			ClearScreen: true,
		},
		Button: ButtonConfig{
			GPIOInterval: Duration(50 * time.Millisecond),
			Signal:       true,
		},
		Departures: DeparturesConfig{
			BaseURL:            fetcher.DefaultSLBaseURL,
			TimeWindow:         60,
			Modes:              []string{fetcher.SLModeMetros},
			PreferredDirection: int(board.DirectionOne),
			PreferredCap:       3,
			AlertThreshold:     3,
		},
		Waste: WasteConfig{
			BaseURL: fetcher.DefaultSRVBaseURL,
			Flash:   true,
		},
	}
}

// LoadFile overlays the YAML file at path onto cfg
func LoadFile(path string, cfg *Config) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(contents))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("Loaded config file")

	return nil
}

// LoadDotEnv exports the variables of an env file into the process environment.
// A missing file is not an error; variables already set are kept.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("Loaded env file")

	return nil
}

func missing(option string) error {
	return fmt.Errorf("%w: %s", ErrMissingOption, option)
}

// Validate checks everything the chosen variant needs before anything starts
// VariantDefaults adjusts the refresh intervals to how often each upstream changes.
// Collection dates move at most daily and the text file is local.
func VariantDefaults(variant Variant) Config {
	cfg := Defaults()

	switch variant {
	case VariantWaste:
		cfg.RefreshNormal = Duration(12 * time.Hour)
		cfg.RefreshFast = Duration(4 * time.Hour)
	case VariantText:
		cfg.RefreshNormal = Duration(30 * time.Second)
		cfg.RefreshFast = Duration(30 * time.Second)
	}

	return cfg
}

func (c *Config) Validate(variant Variant) error {
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive")
	}
	if c.RefreshNormal <= 0 || c.RefreshFast <= 0 {
		return fmt.Errorf("refresh intervals must be positive")
	}
	if c.GracePeriod < 0 {
		return fmt.Errorf("grace period must not be negative")
	}

	if _, err := timeutil.LanguageByCode(c.Language); err != nil {
		return err
	}

	if c.ActiveHours != "" {
		if _, err := timeutil.ParseActiveHours(c.ActiveHours); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Display.Sink) {
	case SinkConsole:
		if c.Display.Columns < 2 || c.Display.Rows < 1 {
			return fmt.Errorf("console display needs at least 2 columns and 1 row")
		}
	case SinkFramebuffer:
		if c.Display.Width <= 0 || c.Display.Height <= 0 {
			return fmt.Errorf("framebuffer display needs a positive width and height")
		}
	default:
		return fmt.Errorf("unknown display sink %q", c.Display.Sink)
	}

	switch variant {
	case VariantDepartures:
		if c.Departures.APIKey == "" {
			return missing("api-key (REALTIME_API_KEY)")
		}
		if c.Departures.SiteID == "" {
			return missing("site-id (SL_SITE_ID)")
		}
		for _, mode := range c.Departures.Modes {
			if !slices.Contains(fetcher.SLModes, mode) {
				return fmt.Errorf("unknown transport mode %q", mode)
			}
		}
		direction := board.Direction(c.Departures.PreferredDirection)
		if direction != board.DirectionOne && direction != board.DirectionTwo {
			return fmt.Errorf("preferred direction must be 1 or 2")
		}
		if c.Departures.PreferredCap < 0 {
			return fmt.Errorf("preferred cap must not be negative")
		}
	case VariantWaste:
		if c.Waste.StreetName == "" {
			return missing("street (SRV_STREETNAME)")
		}
		if c.Waste.Item == "" {
			return missing("item (SRV_ITEM)")
		}
	case VariantText:
		if c.Text.Path == "" {
			return missing("file (SIGNBOARD_TEXT_FILE)")
		}
	default:
		return fmt.Errorf("unknown variant %q", variant)
	}

	return nil
}
