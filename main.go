package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/evilhangman/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.New().Execute(context.Background()); err != nil {
		log.Error().Err(err).Msg("hangman")
		os.Exit(1)
	}
}
