// internal/game/engine.go
//
// Core engine for a single adversarial hangman session.
// Responsibilities:
//   - Create games from a word source and a fixed word length.
//   - Validate guesses (exactly one letter, case-folded to lowercase).
//   - Narrow the candidates to the dominant partition after each guess.
//   - Reveal letters or record wrong guesses; report the derived state.
//
// Notes:
//   - The word is never chosen up front. Candidates shrink only by
//     wholesale replacement with the dominant partition.
//   - Re-guessing a letter is accepted; it reruns the partition and leaves
//     everything but the attempt count unchanged.

package game

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/robalobadob/evilhangman/internal/lexicon"
)

var (
	// ErrInvalidGuess is returned when input is not exactly one letter.
	ErrInvalidGuess = errors.New("game: guess must be a single letter")
	// ErrGameOver is returned when guessing after the word is revealed.
	ErrGameOver = errors.New("game: game is over")
	// ErrNoCandidates is returned when the source has no word of the
	// requested length even though longer words exist.
	ErrNoCandidates = errors.New("game: no words of requested length")
)

// New loads the words of the given length from src and starts a game.
// Loader failures (lexicon.ErrInvalidLength, lexicon.ErrLengthTooLarge,
// lexicon.ErrSourceUnavailable) are returned as-is.
func New(src lexicon.Source, length int) (*Game, error) {
	lex, err := lexicon.Load(src, length)
	if err != nil {
		return nil, err
	}
	if len(lex.Words) == 0 {
		return nil, fmt.Errorf("%w: length %d in %s", ErrNoCandidates, length, lex.Source)
	}

	pattern := make([]rune, length)
	for i := range pattern {
		pattern[i] = Hidden
	}
	return &Game{
		ID:         uuid.NewString(),
		length:     length,
		candidates: lex.Words,
		pattern:    pattern,
	}, nil
}

// ProcessGuess applies one guessed letter.
//
// Invalid input returns ErrInvalidGuess and leaves the game untouched; a
// guess on a won game returns ErrGameOver. Otherwise the attempt counter
// advances, candidates are replaced by the dominant partition, and the
// letter is either revealed or added to the wrong guesses.
func (g *Game) ProcessGuess(input string) (Turn, error) {
	if g.IsWon() {
		return Turn{Snapshot: g.Snapshot()}, ErrGameOver
	}
	letter, err := normalizeGuess(input)
	if err != nil {
		return Turn{Snapshot: g.Snapshot()}, err
	}

	g.attempts++

	best := dominant(partitionWords(g.candidates, letter))
	g.candidates = best.words

	hit := strings.ContainsRune(best.key, letter)
	if hit {
		for i, r := range []rune(best.key) {
			if r == letter {
				g.pattern[i] = letter
			}
		}
	} else {
		g.addWrong(letter)
	}

	return Turn{
		Snapshot: g.Snapshot(),
		Letter:   letter,
		Key:      best.key,
		Hit:      hit,
	}, nil
}

// normalizeGuess trims surrounding whitespace and requires exactly one
// letter, returned in lowercase.
func normalizeGuess(input string) (rune, error) {
	s := strings.TrimSpace(input)
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError || !unicode.IsLetter(r) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGuess, input)
	}
	return unicode.ToLower(r), nil
}

// addWrong inserts letter into the sorted wrong-guess set.
func (g *Game) addWrong(letter rune) {
	i, found := slices.BinarySearch(g.wrong, letter)
	if !found {
		g.wrong = slices.Insert(g.wrong, i, letter)
	}
}

// IsWon reports whether every position has been revealed.
func (g *Game) IsWon() bool {
	return !slices.Contains(g.pattern, Hidden)
}

// State returns the derived game state.
func (g *Game) State() State {
	if g.IsWon() {
		return StateWon
	}
	return StateActive
}

// Pattern returns the revealed pattern, Hidden where unknown.
func (g *Game) Pattern() string { return string(g.pattern) }

// WrongGuesses returns the letters known to be absent, ascending.
func (g *Game) WrongGuesses() []rune { return slices.Clone(g.wrong) }

// Attempts returns the number of processed guesses.
func (g *Game) Attempts() int { return g.attempts }

// Length returns the word length of this game.
func (g *Game) Length() int { return g.length }

// Remaining returns how many candidate words are still possible.
func (g *Game) Remaining() int { return len(g.candidates) }

// Candidates returns a copy of the remaining candidate words.
func (g *Game) Candidates() []string { return slices.Clone(g.candidates) }

// Snapshot copies the visible state of the game.
func (g *Game) Snapshot() Snapshot {
	wrong := make([]string, len(g.wrong))
	for i, r := range g.wrong {
		wrong[i] = string(r)
	}
	return Snapshot{
		ID:           g.ID,
		Length:       g.length,
		Pattern:      g.Pattern(),
		WrongGuesses: wrong,
		Attempts:     g.attempts,
		State:        g.State(),
		Remaining:    len(g.candidates),
	}
}
