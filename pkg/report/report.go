// Package report renders token streams, symbol tables and diagnostics for
// the command line.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"lsic/pkg/config"
	"lsic/pkg/lsi"
)

var (
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorSuccess = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Printer writes everything the CLI shows about one source file.
type Printer struct {
	w      io.Writer
	lines  []string
	color  bool
	errS   lipgloss.Style
	warnS  lipgloss.Style
	okS    lipgloss.Style
	mutedS lipgloss.Style
}

// NewPrinter returns a Printer for src. With color false no escape
// sequences are written.
func NewPrinter(w io.Writer, src string, color bool) *Printer {
	return &Printer{
		w:      w,
		lines:  strings.Split(src, "\n"),
		color:  color,
		errS:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		warnS:  lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		okS:    lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
		mutedS: lipgloss.NewStyle().Foreground(colorMuted),
	}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Tokens writes tokens in the given format.
func (p *Printer) Tokens(tokens []lsi.Token, format string) error {
	switch format {
	case config.FormatYAML:
		return writeYAML(p.w, tokens)
	case config.FormatJSON:
		return writeJSON(p.w, tokens)
	case config.FormatText, "":
		fmt.Fprintf(p.w, "Tokens (%d)\n", len(tokens))
		for _, tok := range tokens {
			fmt.Fprintln(p.w, " ", tok)
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}

type symbolDump struct {
	Functions []lsi.Symbol `json:"functions" yaml:"functions"`
	Variables []lsi.Symbol `json:"variables" yaml:"variables"`
}

// Symbols writes the declared names in the given format.
func (p *Printer) Symbols(syms *lsi.SymbolTable, format string) error {
	dump := symbolDump{Functions: syms.Functions(), Variables: syms.Variables()}
	switch format {
	case config.FormatYAML:
		return writeYAML(p.w, dump)
	case config.FormatJSON:
		return writeJSON(p.w, dump)
	case config.FormatText, "":
		_, err := io.WriteString(p.w, syms.String())
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// LexErrors writes the error folded by lsi.LexErrors: one warning per lexical
// error in discovery order, then the count. A nil err writes nothing.
func (p *Printer) LexErrors(err error) {
	if err == nil {
		return
	}
	label := p.style(p.warnS, "lexical error")
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		fmt.Fprintf(p.w, "%s: %v\n", label, err)
		return
	}
	list := merr.WrappedErrors()
	for _, e := range list {
		var lerr *lsi.LexError
		if !errors.As(e, &lerr) {
			fmt.Fprintf(p.w, "%s: %v\n", label, e)
			continue
		}
		p.diagnostic(label, lerr.Line, lerr.Column, fmt.Sprintf("%s %q", lerr.Kind, lerr.Text))
	}
	fmt.Fprintln(p.w, p.style(p.warnS, fmt.Sprintf("%d lexical error(s)", len(list))))
}

// ParseError writes the parse failure. Errors that are not *lsi.ParseError
// are written without a snippet.
func (p *Printer) ParseError(err error) {
	var perr *lsi.ParseError
	if !errors.As(err, &perr) {
		fmt.Fprintf(p.w, "%s: %v\n", p.style(p.errS, "error"), err)
		return
	}
	label := "syntax error"
	if perr.Kind != lsi.SyntaxError {
		label = "semantic error"
	}
	// The position is already part of the snippet header.
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	p.diagnostic(p.style(p.errS, label), perr.Line, perr.Column, msg)
}

// Success writes a one-line confirmation.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, p.style(p.okS, msg))
}

// diagnostic writes  label: line L, column C: msg  followed by the source line
// and a caret under the column.
func (p *Printer) diagnostic(label string, line, column int, msg string) {
	fmt.Fprintf(p.w, "%s: line %d, column %d: %s\n", label, line, column, msg)
	idx := line - 1
	if idx < 0 || idx >= len(p.lines) {
		return
	}
	src := strings.TrimRight(p.lines[idx], "\r")
	fmt.Fprintf(p.w, "  %s %s\n", p.style(p.mutedS, "|>"), src)
	fmt.Fprintf(p.w, "  %s %s^\n", p.style(p.mutedS, "| "), caretPad(src, column))
}

// caretPad returns whitespace as wide as src[:column], keeping tabs so the
// caret lines up in a terminal.
func caretPad(src string, column int) string {
	if column > len(src) {
		column = len(src)
	}
	var sb strings.Builder
	for _, r := range src[:column] {
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
