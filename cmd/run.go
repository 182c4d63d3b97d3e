package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := newLogger(logLevel)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		sources, err := runReadExpressions(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		env, lerr := newEnv(logger, nil, nil)
		if lerr.Type == lisp.LError {
			printException(os.Stderr, logger, lerr)
			os.Exit(1)
		}
		for i := range sources {
			name := args[i]
			if runExpression {
				name = fmt.Sprintf("<expr %d>", i)
			}
			lerr := runSource(env, name, sources[i])
			if lerr.Type == lisp.LError {
				printException(os.Stderr, logger, lerr)
				os.Exit(1)
			}
		}
	},
}

func runSource(env *lisp.LEnv, name string, source []byte) *lisp.LVal {
	exprs, err := env.Runtime.Reader.Read(name, bytes.NewReader(source))
	if errors.Is(err, lisp.ErrNoInput) {
		return lisp.Nil()
	}
	if err != nil {
		return lisp.Error(err)
	}
	for _, expr := range exprs {
		v := env.Eval(expr)
		if v.Type == lisp.LError {
			return v
		}
		if runPrint {
			fmt.Fprintln(env.Runtime.Stdout, v.Print(true))
		}
	}
	return lisp.Nil()
}

func runReadExpressions(args []string) ([][]byte, error) {
	exprs := make([][]byte, len(args))
	if runExpression {
		for i := range args {
			exprs[i] = []byte(args[i])
		}
		return exprs, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		exprs[i] = b
	}
	return exprs, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
