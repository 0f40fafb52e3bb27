// internal/game/play.go
//
// Interactive game loop, independent of any presentation technology.
// A Prompter asks the player for the next guess and shows state; Play
// drives a Game with it until the word is revealed or the player quits.

package game

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// ErrQuit is returned by a Prompter when the player asks to stop.
var ErrQuit = errors.New("game: player quit")

// Prompter is the presentation capability used by Play.
type Prompter interface {
	// NextGuess requests the next guess. Returning ErrQuit ends the game.
	NextGuess(ctx context.Context, s Snapshot) (string, error)
	// Display shows the outcome of every turn (t.State is StateWon after
	// the last one). After a rejected input only t.Snapshot is filled in
	// and t.Rejected is set.
	Display(t Turn)
}

// Play runs g to completion against p. It re-prompts on invalid input and
// returns the final snapshot, or the last snapshot with the error that
// stopped the loop (ErrQuit, a prompter failure or ctx cancellation).
func Play(ctx context.Context, g *Game, p Prompter) (Snapshot, error) {
	snap := g.Snapshot()
	for !g.IsWon() {
		if err := ctx.Err(); err != nil {
			return g.Snapshot(), err
		}
		input, err := p.NextGuess(ctx, snap)
		if err != nil {
			return g.Snapshot(), err
		}

		turn, err := g.ProcessGuess(input)
		switch {
		case errors.Is(err, ErrInvalidGuess):
			snap = g.Snapshot()
			snap.Rejected = input
			p.Display(Turn{Snapshot: snap})
			continue
		case err != nil:
			return g.Snapshot(), err
		}

		log.Debug().
			Str("gameId", g.ID).
			Str("letter", string(turn.Letter)).
			Str("key", turn.Key).
			Int("remaining", turn.Remaining).
			Msg("guess processed")

		snap = turn.Snapshot
		p.Display(turn)
	}
	return snap, nil
}
