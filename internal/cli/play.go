package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/evilhangman/internal/console"
	"github.com/robalobadob/evilhangman/internal/game"
	"github.com/robalobadob/evilhangman/internal/lexicon"
)

type playOptions struct {
	length  int
	lexicon string
}

// newPlayCmd creates the play command.
func (a *App) newPlayCmd() *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Long: `Play one game of hangman in the terminal.

Type a letter and press enter to guess. Type "quit" or "exit", or close
the input, to give up.

Examples:
  # Five-letter words from the built-in list
  hangman play

  # Seven-letter words from your own list, one word per line
  hangman play --length 7 --lexicon /usr/share/dict/words`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("length") {
				opts.length = a.cfg.WordLength
			}
			if !cmd.Flags().Changed("lexicon") {
				opts.lexicon = a.cfg.LexiconPath
			}
			return a.play(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.length, "length", "n", 0, "Word length (default from config, 5)")
	cmd.Flags().StringVarP(&opts.lexicon, "lexicon", "l", "", "Word list file, one word per line (default: built-in list)")

	return cmd
}

func (a *App) play(cmd *cobra.Command, opts *playOptions) error {
	src := lexicon.Resolve(opts.lexicon)
	g, err := game.New(src, opts.length)
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	log.Debug().Str("gameId", g.ID).Str("source", src.Name()).Int("length", opts.length).
		Int("candidates", g.Remaining()).Msg("game started")

	p := console.New(a.stdin, a.stdout)
	defer p.Close()
	p.Intro(g.Snapshot())

	final, err := game.Play(cmd.Context(), g, p)
	if errors.Is(err, game.ErrQuit) {
		p.Quit(final)
		return nil
	}
	return err
}
