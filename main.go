package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/rhythm00111/capella-notes/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/capella/config.yaml)")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
	}

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}

	if err := app.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
