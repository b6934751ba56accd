package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/spf13/cobra"

	"lsic/pkg/config"
	"lsic/pkg/report"
	"lsic/pkg/utils"
)

// errReported marks failures whose diagnostics were already printed.
var errReported = errors.New("failed")

type options struct {
	cfgFile       string
	verbose       bool
	format        string
	noColor       bool
	allowAdjacent bool
	skipComments  bool
	symbols       bool
}

// NewRootCmd builds the lsic command tree. Each call returns independent flag
// state.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "lsic",
		Short: "Lexer and recognizer for the LSI teaching language",
		Long: `lsic tokenizes and checks LSI programs.

Commands:
  tokens  - print the token stream and lexical errors
  parse   - check syntax and declarations, stop at the first error
  check   - both phases plus the symbol table`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	pf.StringVarP(&opts.format, "format", "f", "", "output format: text, yaml or json")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored diagnostics")
	pf.BoolVar(&opts.allowAdjacent, "allow-adjacent-operators", false, "do not report adjacent arithmetic operators")
	pf.BoolVar(&opts.skipComments, "skip-comments", false, "treat '#' to end of line as a comment")

	rootCmd.AddCommand(
		newTokensCmd(opts),
		newParseCmd(opts),
		newCheckCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and prints errors that were not already
// reported as diagnostics.
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}

// syncWriter adapts a plain writer to the logger's SyncWriter.
type syncWriter struct {
	io.Writer
}

func (syncWriter) Sync() error { return nil }

func newLogger(w io.Writer, verbose bool) slog.Logger {
	if !verbose {
		return logger.NewNopLogger()
	}
	return logger.NewFromOptions(&logger.Options{SyncWriter: syncWriter{w}})
}

// session is everything a subcommand needs for one source file.
type session struct {
	cfg  *config.Config
	log  slog.Logger
	src  string
	out  *report.Printer
	diag *report.Printer
}

// newSession resolves configuration, applies flag overrides and loads the
// source named by path.
func newSession(cmd *cobra.Command, opts *options, path string) (*session, error) {
	log := newLogger(cmd.ErrOrStderr(), opts.verbose)

	cfg, used, err := config.Discover(opts.cfgFile)
	if err != nil {
		return nil, err
	}
	if used != "" {
		log.Debug(fmt.Sprintf("loaded config %s", used))
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("no-color") {
		cfg.Output.NoColor = opts.noColor
	}
	if flags.Changed("allow-adjacent-operators") {
		cfg.Lexer.AllowAdjacentOperators = opts.allowAdjacent
	}
	if flags.Changed("skip-comments") {
		cfg.Lexer.SkipComments = opts.skipComments
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src, full, err := utils.ReadSource(path)
	if err != nil {
		return nil, err
	}
	log.Info(fmt.Sprintf("read %s (%d bytes)", full, len(src)))

	color := !cfg.Output.NoColor && isTerminal(cmd.ErrOrStderr())
	return &session{
		cfg:  cfg,
		log:  log,
		src:  src,
		out:  report.NewPrinter(cmd.OutOrStdout(), src, false),
		diag: report.NewPrinter(cmd.ErrOrStderr(), src, color),
	}, nil
}

// isTerminal reports whether w is a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
