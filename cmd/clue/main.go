package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"clue-sim/internal/cli"
	"clue-sim/internal/config"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Pick up CLUE_* overrides from an optional .env file
	_ = godotenv.Load()

	// 2. Parse command-line flags
	logLevel := flag.String("loglevel", envOr("CLUE_LOGLEVEL", "info"), "Set logging level (debug, info, warn, error)")
	configPath := flag.String("config", envOr("CLUE_CONFIG", "default_config.json"), "Path to the card configuration")
	flag.Parse()

	// 3. Set up top-level dependencies (Logger)
	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	// 4. Load game configuration, falling back to the classic card set
	gameConfig, err := config.Load(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Debugf("No configuration at %s, using the classic card set.", *configPath)
		gameConfig, err = config.Default(), nil
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 5. Create the CLI and run the application
	ui := cli.NewCLI(log)
	randSource := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := ui.Run(ctx, flag.Args(), gameConfig, randSource); err != nil {
		log.Errorf("Application exited with error: %v", err)
		stop()
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
