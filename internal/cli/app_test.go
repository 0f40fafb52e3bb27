package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/robalobadob/evilhangman/internal/lexicon"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func writeWords(t *testing.T, words ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HANGMAN_CONFIG", "")
	t.Setenv("LEXICON_FILE", "")
	t.Setenv("WORD_LENGTH", "")
	t.Setenv("LOG_LEVEL", "disabled")
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr).WithInput(strings.NewReader(stdin))
	err := app.ExecuteWithArgs(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func TestApp_Help(t *testing.T) {
	out, _, err := run(t, "", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, sub := range []string{"play", "serve", "analyze"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing %q:\n%s", sub, out)
		}
	}
}

func TestApp_Analyze(t *testing.T) {
	path := writeWords(t, "ox", "cat", "dog", "bird")
	out, _, err := run(t, "", "analyze", "--lexicon", path)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	for _, want := range []string{"words:    4", "shortest: 2", "longest:  4", "      3  2"} {
		if !strings.Contains(out, want) {
			t.Errorf("analyze output missing %q:\n%s", want, out)
		}
	}
}

func TestApp_AnalyzeMissingFile(t *testing.T) {
	_, _, err := run(t, "", "analyze", "--lexicon", filepath.Join(t.TempDir(), "none.txt"))
	if !errors.Is(err, lexicon.ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestApp_PlayToWin(t *testing.T) {
	path := writeWords(t, "cat", "bird")
	out, _, err := run(t, "x\nc\na\nt\n", "play", "--lexicon", path, "--length", "3")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	for _, want := range []string{
		"I'm thinking of a 3-letter word.",
		"No x in the word.",
		"You got it! The word was cat.",
		"It took you 4 tries.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("play output missing %q:\n%s", want, out)
		}
	}
}

func TestApp_PlayQuit(t *testing.T) {
	path := writeWords(t, "cat")
	out, _, err := run(t, "z\nquit\n", "play", "--lexicon", path, "-n", "3")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if !strings.Contains(out, "Bye. You gave up after 1 try.") {
		t.Errorf("output:\n%s", out)
	}
}

func TestApp_PlayErrors(t *testing.T) {
	path := writeWords(t, "cat", "bird")
	_, _, err := run(t, "", "play", "--lexicon", path, "--length", "9")
	if !errors.Is(err, lexicon.ErrLengthTooLarge) {
		t.Errorf("length 9: err = %v", err)
	}
	_, _, err = run(t, "", "play", "--lexicon", path, "--length", "0")
	if !errors.Is(err, lexicon.ErrInvalidLength) {
		t.Errorf("length 0: err = %v", err)
	}
}

func TestApp_ConfigFileSetsLength(t *testing.T) {
	words := writeWords(t, "cat", "bird")
	ini := filepath.Join(t.TempDir(), "hangman.ini")
	body := "[game]\nlexicon = " + words + "\nword_length = 4\n"
	if err := os.WriteFile(ini, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "quit\n", "play", "--config", ini)
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if !strings.Contains(out, "4-letter word") {
		t.Errorf("output:\n%s", out)
	}
}
