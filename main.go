package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func main() {
	// Local runs can keep credentials in a .env file; a missing file is fine.
	_ = godotenv.Load()

	level := zerolog.InfoLevel
	if os.Getenv("SVELTE_SCAN_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	Execute()
}
