package lsi

import "fmt"

// TokenKind identifies the category of a lexed token.
type TokenKind int

const (
	EOF TokenKind = iota // sentinel: cursor past the last token, never emitted

	// Keywords
	DEF    // "def"
	INT    // "int"
	RETURN // "return"
	IF     // "if"
	ELSE   // "else"
	PRINT  // "print"

	// Literals
	ID  // variable / function name
	NUM // decimal integer literal

	// Arithmetic operators
	PLUS   // +
	MINUS  // -
	TIMES  // *
	DIVIDE // /

	// Assignment / comparison (EQ is scanned before ASSIGN)
	ASSIGN // =
	EQ     // ==
	LT     // <
	GT     // >

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	SEMICOLON // ;
)

var kindNames = [...]string{
	EOF:       "EOF",
	DEF:       "DEF",
	INT:       "INT",
	RETURN:    "RETURN",
	IF:        "IF",
	ELSE:      "ELSE",
	PRINT:     "PRINT",
	ID:        "ID",
	NUM:       "NUM",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	TIMES:     "TIMES",
	DIVIDE:    "DIVIDE",
	ASSIGN:    "ASSIGN",
	EQ:        "EQ",
	LT:        "LT",
	GT:        "GT",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	COMMA:     "COMMA",
	SEMICOLON: "SEMICOLON",
}

func (k TokenKind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// MarshalText lets encoders write kinds by name.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// isArithmetic reports whether k takes part in the adjacent-operator check.
func (k TokenKind) isArithmetic() bool {
	return k == PLUS || k == MINUS || k == TIMES || k == DIVIDE
}

// Token is a single lexical unit produced by Tokenize.
type Token struct {
	Kind TokenKind `json:"kind" yaml:"kind"`
	// Lexeme is the exact source text that was matched.
	Lexeme string `json:"lexeme" yaml:"lexeme"`
	// Value holds the integer value of a NUM token and is zero otherwise.
	Value int `json:"value,omitempty" yaml:"value,omitempty"`
	// Line is 1-based; Column is the 0-based byte offset within the line.
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d, column %d", t.Kind, t.Lexeme, t.Line, t.Column)
}
