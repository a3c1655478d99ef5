package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/grossbook-dev/grossbook/internal/commands"
)

func main() {
	// Optional .env for GROSSBOOK_* overrides.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
