package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lsic/pkg/lsi"
)

func newTokensCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file.lsi>",
		Short: "Print the token stream of a source file",
		Long: `Tokenize a source file and print every classified token.

Lexical errors are reported on stderr after the token list; they do not
stop classification of the rest of the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, opts, args[0])
		},
	}
}

func runTokens(cmd *cobra.Command, opts *options, path string) error {
	s, err := newSession(cmd, opts, path)
	if err != nil {
		return err
	}

	tokens, lexErrs := lsi.TokenizeWithOptions(s.src, s.cfg.LexOptions())
	s.log.Info(fmt.Sprintf("%d tokens, %d lexical errors", len(tokens), len(lexErrs)))

	if err := s.out.Tokens(tokens, s.cfg.Output.Format); err != nil {
		return err
	}
	if folded := lsi.LexErrors(lexErrs); folded != nil {
		s.log.Warning(folded.Error())
		s.diag.LexErrors(folded)
		return errReported
	}
	return nil
}
