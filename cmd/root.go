package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatsuo/gomal/lisp"
	"github.com/bmatsuo/gomal/lisp/lisplib"
	"github.com/bmatsuo/gomal/parser"
	"github.com/bmatsuo/gomal/repl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const logLevelFlag = "log-level"

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gomal [--flag[=value]]... [file [args...]]",
	Short: "A mal interpreter",
	Long: `Run a mal program or start an interactive session.

Arguments of the form --flag and --flag=value preceding the file are bound in
the root environment before the prelude is loaded.  A bare flag is bound to
true and a flag with a value is bound to that value as a string.  Arguments
following the file are bound to *ARGV*.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		flags, args := splitFlags(args)
		for _, f := range flags {
			if f.name == logLevelFlag {
				logLevel = f.value.Str
			}
		}
		logger, err := newLogger(logLevel)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		var lines lisp.LineReader
		var ed repl.LineEditor
		if len(args) == 0 {
			ed, err = repl.NewReadlineEditor()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer ed.Close()
			lines = repl.LineReader(ed)
		}

		env, lerr := newEnv(logger, lines, flags)
		if lerr.Type == lisp.LError {
			printException(os.Stderr, logger, lerr)
			os.Exit(1)
		}

		if len(args) > 0 {
			lisplib.SetArgv(env, args[1:])
			v := env.Eval(lisp.List(lisp.Symbol("load-file"), lisp.String(args[0])))
			if v.Type == lisp.LError {
				printException(os.Stderr, logger, v)
				os.Exit(1)
			}
			return
		}

		v := env.LoadString("banner", `(println (str "Mal [" *host-language* "]"))`)
		if v.Type == lisp.LError {
			printException(os.Stderr, logger, v)
		}
		err = repl.RunRepl(env, ed)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, logLevelFlag, "info",
		"Logging level (trace, debug, info, warn, error)")
}

type envFlag struct {
	name  string
	value *lisp.LVal
}

// splitFlags separates leading --flag and --flag=value arguments from
// positional arguments.  An argument "--" ends the flags and is discarded.
func splitFlags(args []string) ([]envFlag, []string) {
	var flags []envFlag
	for len(args) > 0 {
		arg := args[0]
		if arg == "--" {
			return flags, args[1:]
		}
		if !strings.HasPrefix(arg, "--") || len(arg) == 2 {
			break
		}
		args = args[1:]
		name := arg[2:]
		i := strings.IndexByte(name, '=')
		if i < 0 {
			flags = append(flags, envFlag{name, lisp.True()})
			continue
		}
		flags = append(flags, envFlag{name[:i], lisp.String(name[i+1:])})
	}
	return flags, args
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Level = lvl
	logger.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	return logger, nil
}

// newEnv returns a root environment with the standard library loaded.  The
// flags are bound before the prelude is evaluated.
func newEnv(logger *logrus.Logger, lines lisp.LineReader, flags []envFlag) (*lisp.LEnv, *lisp.LVal) {
	env := lisp.NewEnv(nil)
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithLogger(logger),
	}
	if lines != nil {
		config = append(config, lisp.WithLineReader(lines))
	}
	lerr := lisp.InitializeUserEnv(env, config...)
	if lerr.Type == lisp.LError {
		return nil, lerr
	}
	for _, f := range flags {
		env.Put(lisp.Symbol(f.name), f.value)
	}
	lerr = lisplib.LoadLibrary(env)
	if lerr.Type == lisp.LError {
		return nil, lerr
	}
	return env, lisp.Nil()
}

func printException(w io.Writer, logger *logrus.Logger, lerr *lisp.LVal) {
	fmt.Fprintf(w, "Exception: %s\n", lerr.ErrorMessage())
	if lerr.Stack != nil && logger.IsLevelEnabled(logrus.DebugLevel) {
		var buf bytes.Buffer
		lerr.Stack.DebugPrint(&buf)
		logger.WithField("condition", lerr.Str).Debug(buf.String())
	}
}
