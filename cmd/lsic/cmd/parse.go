package cmd

import (
	"github.com/spf13/cobra"

	"lsic/pkg/lsi"
)

func newParseCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "parse <file.lsi>",
		Short: "Check syntax and declarations of a source file",
		Long: `Tokenize and parse a source file, stopping at the first syntax or
undeclared-name error.

Lexical errors are reported as warnings; the parser still runs over the
tokens that were classified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, args[0])
		},
	}
	c.Flags().BoolVarP(&opts.symbols, "symbols", "s", false, "print the symbol table after a successful parse")
	return c
}

func runParse(cmd *cobra.Command, opts *options, path string) error {
	s, err := newSession(cmd, opts, path)
	if err != nil {
		return err
	}

	res := lsi.Check(s.src, s.cfg.LexOptions())
	if folded := lsi.LexErrors(res.LexErrors); folded != nil {
		s.log.Warning(folded.Error())
		s.diag.LexErrors(folded)
	}
	if res.Err != nil {
		s.log.Warning("parse failed: " + res.Err.Error())
		s.diag.ParseError(res.Err)
		return errReported
	}

	s.out.Success("parse OK")
	if opts.symbols {
		return s.out.Symbols(res.Symbols, s.cfg.Output.Format)
	}
	return nil
}
