package signboard

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/travigo/signboard/pkg/config"
	"github.com/urfave/cli/v2"
)

var usages = map[config.Variant]string{
	config.VariantDepartures: "Realtime SL departures for one site",
	config.VariantWaste:      "Upcoming SRV waste collections for one street",
	config.VariantText:       "Lines of a local text file with time placeholders",
}

func RegisterCLI(variant config.Variant) *cli.Command {
	return &cli.Command{
		Name:  string(variant),
		Usage: usages[variant],
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "drive the display until interrupted",
				Flags: config.Flags(variant),
				Action: func(c *cli.Context) error {
					processStart := time.Now()

					cfg, err := config.Load(c, variant)
					if err != nil {
						return err
					}

					signboard, err := New(cfg, variant, processStart)
					if err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()

					return signboard.Run(ctx)
				},
			},
			{
				Name:  "dump",
				Usage: "fetch once and print the data and the frame it renders to",
				Flags: config.Flags(variant),
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c, variant)
					if err != nil {
						return err
					}
					cfg.Display.Sink = config.SinkConsole
					cfg.Waste.Flash = false

					signboard, err := New(cfg, variant, time.Now())
					if err != nil {
						return err
					}

					ctx, cancel := context.WithTimeout(c.Context, cfg.HTTPTimeout.Std()+time.Second)
					defer cancel()

					return signboard.Dump(ctx, c.App.Writer)
				},
			},
		},
	}
}
