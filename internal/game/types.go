// internal/game/types.go
//
// Core type definitions for the adversarial hangman engine.
// Defines:
//   - State: derived game state (active/won).
//   - Game: the selector owning candidates, pattern, wrong guesses and attempts.
//   - Snapshot: a read-only view of a game for presentation layers.
//   - Turn: the outcome of one processed guess.

package game

// State is the coarse game state. It is derived from the revealed pattern,
// never stored: a game is won exactly when no position is hidden.
type State string

const (
	StateActive State = "active"
	StateWon    State = "won"
)

// Hidden marks a position that is not yet revealed.
const Hidden = '-'

// Game holds the state of a single adversarial hangman session.
// A Game is not safe for concurrent use.
type Game struct {
	ID         string   // Unique game identifier (UUID).
	length     int      // Word length L for this game.
	candidates []string // Words still consistent with every guess, in load order.
	pattern    []rune   // Revealed pattern, Hidden where unknown.
	wrong      []rune   // Letters confirmed absent, ascending.
	attempts   int      // Number of processed guesses.
}

// Snapshot is a copy of a game's visible state.
type Snapshot struct {
	ID           string   `json:"gameId"`
	Length       int      `json:"length"`
	Pattern      string   `json:"pattern"`
	WrongGuesses []string `json:"wrongGuesses"`
	Attempts     int      `json:"attempts"`
	State        State    `json:"state"`
	Remaining    int      `json:"remaining"`
	// Rejected holds the last input refused as an invalid guess, if any.
	Rejected string `json:"rejected,omitempty"`
}

// Turn is the result of one successful ProcessGuess call.
type Turn struct {
	Snapshot
	Letter rune   `json:"-"`
	Key    string `json:"key"` // dominant partition key
	Hit    bool   `json:"hit"` // letter was revealed somewhere
}
