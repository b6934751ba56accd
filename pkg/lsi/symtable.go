package lsi

import (
	"fmt"
	"sort"
	"strings"
)

// SymbolKind tells variables from functions.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
)

func (k SymbolKind) String() string {
	if k == SymFunction {
		return "function"
	}
	return "variable"
}

func (k SymbolKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Symbol records where a name was first declared. Arity is only meaningful
// for functions.
type Symbol struct {
	Name   string     `json:"name" yaml:"name"`
	Kind   SymbolKind `json:"kind" yaml:"kind"`
	Line   int        `json:"line" yaml:"line"`
	Column int        `json:"column" yaml:"column"`
	Arity  int        `json:"arity,omitempty" yaml:"arity,omitempty"`
}

// SymbolTable holds the declared variables and functions of one parse.
// Both sets are flat: a name declared anywhere, including inside a function
// body or parameter list, stays declared for the rest of the parse. Names are
// never removed.
type SymbolTable struct {
	vars  map[string]Symbol
	funcs map[string]Symbol
}

// NewSymbolTable returns empty tables.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		vars:  make(map[string]Symbol),
		funcs: make(map[string]Symbol),
	}
}

// DeclareVariable inserts the name carried by tok. Redeclaring is allowed and
// keeps the first declaration. It reports whether the name was already known.
func (s *SymbolTable) DeclareVariable(tok Token) bool {
	if _, ok := s.vars[tok.Lexeme]; ok {
		return true
	}
	s.vars[tok.Lexeme] = Symbol{Name: tok.Lexeme, Kind: SymVariable, Line: tok.Line, Column: tok.Column}
	return false
}

// DeclareFunction inserts the function named by tok.
func (s *SymbolTable) DeclareFunction(tok Token) bool {
	if _, ok := s.funcs[tok.Lexeme]; ok {
		return true
	}
	s.funcs[tok.Lexeme] = Symbol{Name: tok.Lexeme, Kind: SymFunction, Line: tok.Line, Column: tok.Column}
	return false
}

// setArity records the parameter count when tok is the function's first
// definition; later redefinitions leave the table untouched.
func (s *SymbolTable) setArity(tok Token, arity int) {
	sym, ok := s.funcs[tok.Lexeme]
	if !ok || sym.Line != tok.Line || sym.Column != tok.Column {
		return
	}
	sym.Arity = arity
	s.funcs[tok.Lexeme] = sym
}

// LookupVariable returns the first declaration of a variable.
func (s *SymbolTable) LookupVariable(name string) (Symbol, bool) {
	sym, ok := s.vars[name]
	return sym, ok
}

// LookupFunction returns the first declaration of a function.
func (s *SymbolTable) LookupFunction(name string) (Symbol, bool) {
	sym, ok := s.funcs[name]
	return sym, ok
}

// Variables returns the declared variables sorted by name.
func (s *SymbolTable) Variables() []Symbol {
	return sorted(s.vars)
}

// Functions returns the declared functions sorted by name.
func (s *SymbolTable) Functions() []Symbol {
	return sorted(s.funcs)
}

func sorted(m map[string]Symbol) []Symbol {
	out := make([]Symbol, 0, len(m))
	for _, sym := range m {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// String returns a deterministically ordered dump of the table.
func (s *SymbolTable) String() string {
	var sb strings.Builder
	if len(s.funcs) > 0 {
		sb.WriteString("Functions:\n")
		for _, sym := range s.Functions() {
			fmt.Fprintf(&sb, "  %-20s  line %d, column %d (params: %d)\n", sym.Name, sym.Line, sym.Column, sym.Arity)
		}
	} else {
		sb.WriteString("Functions: (empty)\n")
	}
	if len(s.vars) > 0 {
		sb.WriteString("Variables:\n")
		for _, sym := range s.Variables() {
			fmt.Fprintf(&sb, "  %-20s  line %d, column %d\n", sym.Name, sym.Line, sym.Column)
		}
	} else {
		sb.WriteString("Variables: (empty)\n")
	}
	return sb.String()
}
