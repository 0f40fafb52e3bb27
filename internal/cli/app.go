// Package cli provides the hangman command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/robalobadob/evilhangman/internal/config"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	cfg        config.Config
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "hangman",
		Short: "Hangman where the computer never commits to a word",
		Long: `hangman plays a game of hangman against an opponent that keeps every
word of the chosen length in play and, after each guess, sticks with the
largest group of words still consistent with what has been revealed.

Play it in the terminal, serve it over HTTP, or inspect a word list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.configPath)
			if err != nil {
				return err
			}
			app.cfg = cfg
			app.setupLogging()
			return nil
		},
	}
	app.root.PersistentFlags().StringVar(&app.configPath, "config", "", "Path to an INI configuration file (default $HANGMAN_CONFIG)")

	app.root.AddCommand(
		app.newPlayCmd(),
		app.newServeCmd(),
		app.newAnalyzeCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// WithInput sets the reader the play command takes guesses from.
func (a *App) WithInput(stdin io.Reader) *App {
	a.stdin = stdin
	a.root.SetIn(stdin)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// setupLogging points the global logger at stderr: human-readable on a
// terminal, JSON otherwise.
func (a *App) setupLogging() {
	lvl, err := zerolog.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if f, ok := a.stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(a.stderr).With().Timestamp().Logger()
	}
	if err != nil {
		log.Warn().Str("level", a.cfg.LogLevel).Msg("unknown log level, using info")
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}
