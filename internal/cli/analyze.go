package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/robalobadob/evilhangman/internal/lexicon"
)

// newAnalyzeCmd creates the analyze command.
func (a *App) newAnalyzeCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarize a word list",
		Long: `Report how many words a list holds, the shortest and longest word
length, and how many words there are of each length.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("lexicon") {
				path = a.cfg.LexiconPath
			}
			st, err := lexicon.Analyze(lexicon.Resolve(path))
			if err != nil {
				return err
			}
			a.printStats(st)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "lexicon", "l", "", "Word list file (default: built-in list)")

	return cmd
}

func (a *App) printStats(st lexicon.Stats) {
	title := color.New(color.FgGreen, color.Bold)
	title.Fprintf(a.stdout, "Lexicon %s\n", st.Source)
	a.printf("  words:    %d\n", st.Words)
	a.printf("  shortest: %d\n", st.MinLength)
	a.printf("  longest:  %d\n", st.MaxLength)
	if st.Words == 0 {
		return
	}
	a.printf("  by length:\n")
	for _, n := range st.Lengths() {
		a.printf("    %3d  %d\n", n, st.ByLength[n])
	}
}
