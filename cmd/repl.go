package cmd

import (
	"fmt"
	"os"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/repl"
	"github.com/spf13/cobra"
)

var (
	replEditor  string
	replHistory string
	replPrompt  string
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive mal session.

The readline editor is used by default.  The liner editor supports a
persistent history file.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := newLogger(logLevel)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		ed, err := newEditor(replEditor, replHistory)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer ed.Close()

		env, lerr := newEnv(logger, repl.LineReader(ed), nil)
		if lerr.Type == lisp.LError {
			printException(os.Stderr, logger, lerr)
			os.Exit(1)
		}
		err = repl.RunRepl(env, ed, repl.WithPrompt(replPrompt))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func newEditor(name string, history string) (repl.LineEditor, error) {
	switch name {
	case "readline":
		if history != "" {
			return nil, fmt.Errorf("the readline editor does not support --history")
		}
		return repl.NewReadlineEditor()
	case "liner":
		return repl.NewLinerEditor(history)
	default:
		return nil, fmt.Errorf("unknown editor: %s", name)
	}
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replEditor, "editor", "readline",
		"Line editor (readline or liner)")
	replCmd.Flags().StringVar(&replHistory, "history", "",
		"History file (liner only)")
	replCmd.Flags().StringVarP(&replPrompt, "prompt", "P", repl.DefaultPrompt,
		"Interactive prompt")
}
