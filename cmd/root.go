/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"os"
	"runtime"

	"github.com/samwightt/gqlcheck/pkg/config"
	"github.com/samwightt/gqlcheck/pkg/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var (
	cfg          *config.Config
	outputFormat render.Format
	logger       = zap.NewNop()
)

func formatFlag() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return string(render.FormatPretty)
	}
	return string(render.FormatText)
}

// newLogger writes development logs to the command's stderr when verbose.
func newLogger(cmd *cobra.Command, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(cmd.ErrOrStderr()),
		zap.DebugLevel,
	)
	return zap.New(core, zap.Development())
}

// NewRootCmd creates and returns the root command with all subcommands attached.
// This function creates a fresh command tree, ensuring no state leaks between invocations.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gqlcheck",
		Short: "Check GraphQL documents against a schema before they run",
		Long: `gqlcheck validates GraphQL queries, mutations and fragments against a schema.
It reports unknown fragments, fragments on non composite types, unknown
arguments, missing required directive arguments and unknown types, with the
offending source underlined.

By default, gqlcheck reads ./schema.graphql in the current directory.
A different schema file can be specified using -s. With an empty schema
(-s "") documents are checked against the built-in directives and the
directive definitions given with --directives.

Settings are read from .gqlcheck.yaml (or .gqlcheck.toml), GQLCHECK_
environment variables and flags, in increasing order of precedence.

Output can be formatted as pretty tables (default in terminals), plain text
(default when piping), JSON or msgpack for integration with other tools.`,
		Example: `  # Validate a query file
  gqlcheck validate query.graphql

  # Validate every document in a directory, four at a time
  gqlcheck validate -j 4 queries/*.graphql

  # Only run some rules
  gqlcheck validate --rules KnownFragmentNames,KnownArgumentNames query.graphql

  # List the available rules
  gqlcheck rules

  # Show required arguments of the known directives
  gqlcheck directives --required

  # Dump the syntax tree of a document
  gqlcheck ast query.graphql`,
	}

	var cfgFile string
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default: .gqlcheck.yaml or .gqlcheck.toml in the working directory)")
	cmd.PersistentFlags().StringP("schema", "s", config.DefaultSchema, "File path of GraphQL schema; empty for schema definition language mode")
	cmd.PersistentFlags().StringP("format", "f", formatFlag(), "Output format: json, text, pretty, msgpack (default: pretty if interactive, text otherwise)")
	cmd.PersistentFlags().Int("max-depth", config.DefaultMaxDepth, "Maximum nesting depth of a document; 0 disables the limit")
	cmd.PersistentFlags().StringSlice("rules", nil, "Comma separated rules to run (default: all default rules)")
	cmd.PersistentFlags().String("directives", "", "SDL file whose directive definitions are added to every document")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Write debug logs to stderr")
	cmd.PersistentFlags().IntP("jobs", "j", runtime.GOMAXPROCS(0), "Number of documents validated at once")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		format := cfg.Format
		if format == "" {
			format = formatFlag()
		}
		outputFormat, err = render.ParseFormat(format)
		if err != nil {
			return err
		}
		logger = newLogger(cmd, cfg.Verbose)
		logger.Debug("loaded config",
			zap.String("file", cfg.File),
			zap.String("schema", cfg.Schema),
			zap.String("format", string(outputFormat)),
			zap.Int("max_depth", cfg.MaxDepth),
			zap.Strings("rules", cfg.Rules),
			zap.Int("jobs", cfg.Jobs),
		)
		return nil
	}

	// Add all subcommands
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewRulesCmd())
	cmd.AddCommand(NewDirectivesCmd())
	cmd.AddCommand(NewASTCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() { _ = logger.Sync() }()
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the CLI with the given arguments and returns stdout, stderr, and any error.
// This is useful for testing.
func ExecuteWithArgs(args []string) (stdout string, stderr string, err error) {
	return ExecuteWithArgsAndStdin(args, nil)
}

// ExecuteWithArgsAndStdin runs the CLI with the given arguments and stdin, returns stdout, stderr, and any error.
// This is useful for testing commands that read from stdin.
func ExecuteWithArgsAndStdin(args []string, stdin *bytes.Buffer) (stdout string, stderr string, err error) {
	cmd := NewRootCmd()

	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)

	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs(args)
	if stdin != nil {
		cmd.SetIn(stdin)
	}

	err = cmd.Execute()

	return stdoutBuf.String(), stderrBuf.String(), err
}
