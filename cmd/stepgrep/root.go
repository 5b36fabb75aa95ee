package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit statuses, as in grep.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

// app holds the state of one invocation.
type app struct {
	v      *viper.Viper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	status int
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	v := viper.New()
	v.SetEnvPrefix("STEPGREP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &app{
		v:      v,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		status: exitNoMatch,
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stepgrep [flags] PATTERN [FILE...]",
		Short: "Print lines matching a step-compiled regular expression",
		Long: `stepgrep compiles each pattern into a tree of matching steps and prints
the input lines that any of them match.

Repetitions are greedy and never give input back unless --backtrack is set,
so a*a matches nothing by default. Only ^ at the start and $ at the end of a
pattern are supported as anchors.

With no FILE, or when FILE is -, standard input is read.

Every flag can also be set from the environment (STEPGREP_BACKTRACK=true,
STEPGREP_LOG_LEVEL=debug, ...) or from a YAML file given with --config.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		RunE: a.run,
	}

	flags := cmd.Flags()
	flags.StringArrayP("regexp", "e", nil, "pattern to match (repeatable)")
	flags.StringP("file", "f", "", "YAML file with patterns")
	flags.Bool("backtrack", false, "let repetitions and alternations backtrack")
	flags.Bool("no-prefilter", false, "disable the literal prefilter")
	flags.BoolP("count", "c", false, "print only a count of matching lines per file")
	flags.BoolP("quiet", "q", false, "print nothing, exit on the first match")
	flags.BoolP("line-number", "n", false, "prefix each line with its line number")
	flags.Bool("dump", false, "print the compiled programs and exit")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("config", "", "config file (YAML)")

	if err := a.v.BindPFlags(flags); err != nil {
		panic(err)
	}
	return cmd
}

// loadConfig reads the --config file, if any, into viper.
func (a *app) loadConfig() error {
	path := a.v.GetString("config")
	if path == "" {
		return nil
	}
	a.v.SetConfigFile(path)
	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// execute runs the command line and returns the exit status.
func execute(a *app, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(a.stderr, "stepgrep: %s\n", errorColor(a).Sprint(err))
		return exitError
	}
	return a.status
}

// Execute runs stepgrep on the process arguments and exits.
func Execute() {
	os.Exit(execute(newApp(os.Stdin, os.Stdout, os.Stderr), os.Args[1:]))
}
