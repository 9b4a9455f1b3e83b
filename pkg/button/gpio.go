package button

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/signboard/pkg/activity"
)

const DefaultGPIOInterval = 50 * time.Millisecond

// GPIOPoller watches a sysfs gpio value file and presses the button on every rising edge
type GPIOPoller struct {
	Path     string
	Interval time.Duration
	Window   *activity.Window
}

// Sample reads the current level of the pin
func (g *GPIOPoller) Sample() (bool, error) {
	contents, err := os.ReadFile(g.Path)
	if err != nil {
		return false, err
	}

	switch strings.TrimSpace(string(contents)) {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("unexpected gpio value %q in %s", strings.TrimSpace(string(contents)), g.Path)
	}
}

func (g *GPIOPoller) Run(ctx context.Context) {
	interval := g.Interval
	if interval <= 0 {
		interval = DefaultGPIOInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	previous, err := g.Sample()
	failing := err != nil
	if failing {
		log.Error().Err(err).Str("path", g.Path).Msg("Failed to read gpio")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		level, err := g.Sample()
		if err != nil {
			if !failing {
				log.Error().Err(err).Str("path", g.Path).Msg("Failed to read gpio")
			}
			failing = true
			continue
		}
		failing = false

		if level && !previous {
			g.Window.Press(time.Now())
			log.Info().Str("source", "gpio").Msg("Button pressed")
		}
		previous = level
	}
}
