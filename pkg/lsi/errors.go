package lsi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// LexErrorKind classifies a lexical error.
type LexErrorKind int

const (
	UnrecognizedChar LexErrorKind = iota
	AdjacentOperators
	IntegerOutOfRange
)

func (k LexErrorKind) String() string {
	switch k {
	case UnrecognizedChar:
		return "unrecognized character"
	case AdjacentOperators:
		return "adjacent operators"
	case IntegerOutOfRange:
		return "integer out of range"
	}
	return fmt.Sprintf("LexErrorKind(%d)", int(k))
}

// LexError is a non-fatal problem found while scanning. Text holds the
// offending character, the operator pair, or the literal.
type LexError struct {
	Kind   LexErrorKind
	Text   string
	Line   int
	Column int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s %q", e.Line, e.Column, e.Kind, e.Text)
}

// LexErrors folds the errors returned by Tokenize into one error, or nil when
// there are none.
func LexErrors(errs []*LexError) error {
	var result *multierror.Error
	for _, e := range errs {
		result = multierror.Append(result, e)
	}
	if result != nil {
		result.ErrorFormat = func(list []error) string {
			lines := make([]string, len(list))
			for i, err := range list {
				lines[i] = err.Error()
			}
			return fmt.Sprintf("%d lexical error(s):\n  %s", len(list), strings.Join(lines, "\n  "))
		}
	}
	return result.ErrorOrNil()
}

// ParseErrorKind tags the failure that aborted a parse.
type ParseErrorKind int

const (
	SyntaxError ParseErrorKind = iota
	UndeclaredVariable
	UndeclaredFunction
)

var (
	ErrSyntax             = errors.New("syntax error")
	ErrUndeclaredVariable = errors.New("undeclared variable")
	ErrUndeclaredFunction = errors.New("undeclared function")
)

// ParseError is the first syntax or semantic violation found by the Parser.
type ParseError struct {
	Kind ParseErrorKind
	// Expected lists the kinds accepted at an expect site. It is empty when
	// no single alternative applied.
	Expected []TokenKind
	// Found is the kind at the cursor, EOF at end of input.
	Found TokenKind
	// Name is the offending identifier for semantic errors.
	Name   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case UndeclaredVariable:
		msg = fmt.Sprintf("undeclared variable %q", e.Name)
	case UndeclaredFunction:
		msg = fmt.Sprintf("undeclared function %q", e.Name)
	default:
		switch len(e.Expected) {
		case 0:
			msg = fmt.Sprintf("unexpected token %s", e.Found)
		case 1:
			msg = fmt.Sprintf("expected %s, found %s", e.Expected[0], e.Found)
		default:
			names := make([]string, len(e.Expected))
			for i, k := range e.Expected {
				names[i] = k.String()
			}
			msg = fmt.Sprintf("expected %s, found %s", strings.Join(names, " or "), e.Found)
		}
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, msg)
}

// Is matches the sentinel for the error's kind.
func (e *ParseError) Is(target error) bool {
	switch e.Kind {
	case SyntaxError:
		return target == ErrSyntax
	case UndeclaredVariable:
		return target == ErrUndeclaredVariable
	case UndeclaredFunction:
		return target == ErrUndeclaredFunction
	}
	return false
}
