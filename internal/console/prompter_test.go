package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/robalobadob/evilhangman/internal/game"
	"github.com/robalobadob/evilhangman/internal/lexicon"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func newGame(t *testing.T, words ...string) *game.Game {
	t.Helper()
	g, err := game.New(lexicon.FromWords("test", words...), len(words[0]))
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return g
}

func TestPlayToWin(t *testing.T) {
	g := newGame(t, "cat")
	var out bytes.Buffer
	p := New(strings.NewReader("\n   \nc\n1\na\nz\nt\n"), &out)

	final, err := game.Play(context.Background(), g, p)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if final.State != game.StateWon || final.Attempts != 4 {
		t.Fatalf("final = %+v", final)
	}

	text := out.String()
	for _, want := range []string{
		"Word: ---  Incorrect guesses: []",
		`"1" is not a single letter`,
		"No z in the word.",
		"Good guess!",
		"Word: ca-  Incorrect guesses: [z]",
		"You got it! The word was cat.",
		"It took you 4 tries.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q\n%s", want, text)
		}
	}
}

func TestQuitWords(t *testing.T) {
	for _, in := range []string{"quit\n", "EXIT\n", ""} {
		g := newGame(t, "dog")
		var out bytes.Buffer
		_, err := game.Play(context.Background(), g, New(strings.NewReader(in), &out))
		if !errors.Is(err, game.ErrQuit) {
			t.Errorf("input %q: err = %v, want ErrQuit", in, err)
		}
	}
}

func TestNextGuessHonoursContext(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := New(r, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.NextGuess(ctx, newGame(t, "owl").Snapshot())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestIntroAndQuit(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader(""), &out)
	p.Intro(game.Snapshot{Length: 6})
	p.Quit(game.Snapshot{Attempts: 1})
	if got := out.String(); got != "I'm thinking of a 6-letter word.\nBye. You gave up after 1 try.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestMissAndHitFeedback(t *testing.T) {
	g := newGame(t, "cat")
	var out bytes.Buffer
	p := New(strings.NewReader("z\nb\nz\nc\na\nt\n"), &out)
	defer p.Close()

	if _, err := game.Play(context.Background(), g, p); err != nil {
		t.Fatalf("Play: %v", err)
	}

	text := out.String()
	counts := map[string]int{
		"No z in the word.": 2,
		"No b in the word.": 1,
		"Good guess!":       2,
		"You got it!":       1,
	}
	for msg, want := range counts {
		if got := strings.Count(text, msg); got != want {
			t.Errorf("%q printed %d times, want %d\n%s", msg, got, want, text)
		}
	}
}

func TestCloseStopsReader(t *testing.T) {
	g := newGame(t, "cat")
	p := New(strings.NewReader("c\na\nt\nleft\nover\n"), io.Discard)

	if _, err := p.NextGuess(context.Background(), g.Snapshot()); err != nil {
		t.Fatalf("NextGuess: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	_ = p.Close()

	select {
	case <-p.stopped:
	case <-time.After(time.Second):
		t.Fatal("reader goroutine still running after Close")
	}
	if _, err := p.NextGuess(context.Background(), g.Snapshot()); !errors.Is(err, game.ErrQuit) {
		t.Errorf("NextGuess after Close err = %v, want ErrQuit", err)
	}
}
