package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/evilhangman/internal/history"
	"github.com/robalobadob/evilhangman/internal/httpserver"
	"github.com/robalobadob/evilhangman/internal/lexicon"
	"github.com/robalobadob/evilhangman/internal/store"
)

type serveOptions struct {
	port string
	db   string
}

// newServeCmd creates the serve command.
func (a *App) newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		Long: `Start the JSON HTTP API. Live games are kept in memory; players,
finished games and the leaderboard are stored in SQLite.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = opts.port
			}
			if cmd.Flags().Changed("db") {
				a.cfg.DBPath = opts.db
			}
			return a.serve(cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.port, "port", "p", "", "Listen port (default from config, 5175)")
	cmd.Flags().StringVar(&opts.db, "db", "", "SQLite database path (default from config)")

	return cmd
}

func (a *App) serve(cmd *cobra.Command) error {
	// The word list is read once up front so a bad path fails at startup.
	src, err := lexicon.Preload(lexicon.Resolve(a.cfg.LexiconPath))
	if err != nil {
		return err
	}

	hist, err := history.Open(a.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer hist.Close()

	srv := httpserver.New(store.NewMemoryStore(), hist, src, a.cfg)
	log.Info().
		Str("port", a.cfg.Port).
		Str("db", a.cfg.DBPath).
		Str("lexicon", src.Name()).
		Msg("starting hangman server")
	return srv.Start(cmd.Context(), ":"+a.cfg.Port)
}
