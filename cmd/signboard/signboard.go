package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/signboard/pkg/config"
	"github.com/travigo/signboard/pkg/signboard"
	"github.com/travigo/signboard/pkg/util"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	envFile := util.FirstEnvironmentVariable(util.GetEnvironmentVariables(), "SIGNBOARD_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	dotEnvErr := config.LoadDotEnv(envFile)

	env := util.GetEnvironmentVariables()

	if env["SIGNBOARD_LOG_FORMAT"] != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if dotEnvErr != nil {
		log.Fatal().Err(dotEnvErr).Msg("Failed to load env file")
	}

	if env["SIGNBOARD_DEBUG"] == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "signboard",
		Description: "Small character displays for departures, waste collections and notes",

		Commands: []*cli.Command{
			signboard.RegisterCLI(config.VariantDepartures),
			signboard.RegisterCLI(config.VariantWaste),
			signboard.RegisterCLI(config.VariantText),
			signboard.RegisterMetricsCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
