package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lsic/pkg/config"
	"lsic/pkg/lsi"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.lsi>",
		Short: "Run both phases and print the symbol table",
		Long: `Run the lexer and parser over a source file and print the declared
functions and variables.

The command fails if either phase reported an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, opts *options, path string) error {
	s, err := newSession(cmd, opts, path)
	if err != nil {
		return err
	}

	res := lsi.Check(s.src, s.cfg.LexOptions())
	s.log.Info(fmt.Sprintf("%d tokens, %d lexical errors", len(res.Tokens), len(res.LexErrors)))

	if folded := lsi.LexErrors(res.LexErrors); folded != nil {
		s.log.Warning(folded.Error())
		s.diag.LexErrors(folded)
	}
	if res.Err != nil {
		s.diag.ParseError(res.Err)
	}

	if s.cfg.Output.Format == config.FormatText && res.OK() {
		s.out.Success(fmt.Sprintf("%s: OK (%d tokens)", path, len(res.Tokens)))
	}
	if err := s.out.Symbols(res.Symbols, s.cfg.Output.Format); err != nil {
		return err
	}
	if !res.OK() {
		return errReported
	}
	return nil
}
