package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/tanks/internal/config"
	"github.com/mitchelldurbincs/tanks/internal/game"
	"github.com/mitchelldurbincs/tanks/internal/game/events"
	"github.com/mitchelldurbincs/tanks/internal/game/events/subscribers"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay to merge (config.<env>.yaml)")
	turns := flag.Int("turns", -1, "Number of turns (-1 to use config default)")
	interval := flag.Duration("interval", -1, "Delay between turns (-1 to use config default)")
	seed := flag.Int64("seed", 0, "Random seed (0 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	color := flag.Bool("color", false, "Render tanks in color")
	watch := flag.Bool("watch", false, "Reload the turn interval when the config file changes")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *turns == -1 {
		*turns = cfg.Simulation.Turns
	}
	if *interval == -1 {
		*interval = cfg.Simulation.TurnInterval
	}
	if *seed == 0 {
		*seed = cfg.Simulation.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if !*color {
		*color = cfg.Render.Color
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	glyphs, err := cfg.GlyphRunes()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid tank glyphs")
	}

	bus := events.NewEventBus()
	eventLogger := subscribers.NewLoggerSubscriber("event-logger", log.Logger, zerolog.DebugLevel)
	bus.Subscribe(eventLogger)

	engine, err := game.NewEngine(game.EngineConfig{
		FieldSize:         cfg.Field.Size,
		Glyphs:            glyphs,
		PlacementAttempts: cfg.Field.PlacementAttempts,
		RotationAttempts:  cfg.Field.RotationAttempts,
		Rng:               rand.New(rand.NewSource(*seed)),
	}, bus)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create engine")
	}

	log.Info().
		Str("game_id", engine.GameID()).
		Int64("seed", *seed).
		Int("field_size", cfg.Field.Size).
		Int("turns", *turns).
		Dur("interval", *interval).
		Msg("Starting simulation")

	opts := []game.RunnerOption{}
	if *color {
		opts = append(opts, game.WithRenderer(game.NewColorRenderer(engine.Field().Tanks())))
	}
	runner := game.NewRunner(engine, os.Stdout, bus, game.RunnerConfig{
		Turns:    *turns,
		Interval: *interval,
	}, opts...)

	if *watch {
		stopWatch, err := config.WatchConfig(func(c *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			runner.SetInterval(c.Simulation.TurnInterval)
		})
		if err != nil {
			log.Warn().Err(err).Msg("Config hot reload disabled")
		} else {
			defer stopWatch()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Int("turn", engine.Turn()).Msg("Simulation interrupted")
			return
		}
		log.Error().Err(err).Msg("Simulation failed")
		stop()
		os.Exit(1)
	}
}

func setupLogging(level, format string) {
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Snapshots own stdout, logs go to stderr
	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
