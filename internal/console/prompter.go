// Package console implements game.Prompter on a line-oriented terminal.
//
// Input is read line by line on a background goroutine so a blocked read
// never keeps NextGuess from honouring context cancellation.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/robalobadob/evilhangman/internal/game"
)

var (
	colorPattern = color.New(color.FgCyan, color.Bold)
	colorHit     = color.New(color.FgGreen)
	colorMiss    = color.New(color.FgRed)
	colorWarn    = color.New(color.FgYellow)
	colorWin     = color.New(color.FgHiGreen, color.Bold)
)

type line struct {
	text string
	err  error
}

// Prompter reads guesses from in and writes the game to out. Call Close
// when done so the reader goroutine does not outlive the game.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	lines chan line

	started   bool
	done      chan struct{} // closed by Close
	closeOnce sync.Once
	stopped   chan struct{} // closed when the reader goroutine exits
}

// New returns a Prompter over in and out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, done: make(chan struct{}), stopped: make(chan struct{})}
}

func (p *Prompter) start() {
	if p.started {
		return
	}
	p.started = true
	p.lines = make(chan line)
	go func() {
		defer close(p.stopped)
		defer close(p.lines)
		send := func(l line) bool {
			select {
			case p.lines <- l:
				return true
			case <-p.done:
				return false
			}
		}
		sc := bufio.NewScanner(p.in)
		for sc.Scan() {
			if !send(line{text: sc.Text()}) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			send(line{err: err})
		}
	}()
}

// Close stops the reader goroutine once its current read returns. Later
// NextGuess calls return game.ErrQuit.
func (p *Prompter) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	return nil
}

// NextGuess prints the board and waits for a non-empty line. "quit",
// "exit" and end of input return game.ErrQuit.
func (p *Prompter) NextGuess(ctx context.Context, s game.Snapshot) (string, error) {
	select {
	case <-p.done:
		return "", game.ErrQuit
	default:
	}
	p.start()
	p.board(s)
	for {
		fmt.Fprint(p.out, "Guess a letter: ")
		select {
		case <-p.done:
			return "", game.ErrQuit
		case <-ctx.Done():
			fmt.Fprintln(p.out)
			return "", ctx.Err()
		case l, ok := <-p.lines:
			if !ok {
				fmt.Fprintln(p.out)
				return "", game.ErrQuit
			}
			if l.err != nil {
				return "", fmt.Errorf("console: read guess: %w", l.err)
			}
			text := strings.TrimSpace(l.text)
			switch strings.ToLower(text) {
			case "":
				continue
			case "quit", "exit":
				return "", game.ErrQuit
			}
			return text, nil
		}
	}
}

// Display reports the outcome of the last input.
func (p *Prompter) Display(t game.Turn) {
	switch {
	case t.Rejected != "":
		colorWarn.Fprintf(p.out, "%q is not a single letter, try again.\n", t.Rejected)
	case t.State == game.StateWon:
		p.end(t.Snapshot)
	case t.Hit:
		colorHit.Fprintln(p.out, "Good guess!")
	default:
		colorMiss.Fprintf(p.out, "No %c in the word.\n", t.Letter)
	}
}

// Intro prints the opening line of a game.
func (p *Prompter) Intro(s game.Snapshot) {
	fmt.Fprintf(p.out, "I'm thinking of a %d-letter word.\n", s.Length)
}

// Quit prints the farewell shown when the player stops early.
func (p *Prompter) Quit(s game.Snapshot) {
	fmt.Fprintf(p.out, "Bye. You gave up after %d %s.\n", s.Attempts, plural(s.Attempts, "try", "tries"))
}

func (p *Prompter) board(s game.Snapshot) {
	fmt.Fprint(p.out, "Word: ")
	colorPattern.Fprint(p.out, s.Pattern)
	fmt.Fprintf(p.out, "  Incorrect guesses: [%s]\n", strings.Join(s.WrongGuesses, ", "))
}

func (p *Prompter) end(s game.Snapshot) {
	colorWin.Fprintf(p.out, "You got it! The word was %s.\n", s.Pattern)
	fmt.Fprintf(p.out, "Incorrect guesses: [%s]\n", strings.Join(s.WrongGuesses, ", "))
	fmt.Fprintf(p.out, "It took you %d %s.\n", s.Attempts, plural(s.Attempts, "try", "tries"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
