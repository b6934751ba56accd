package lsi

import (
	"math"
	"strconv"
	"unicode/utf8"
)

// keywords maps source text to its keyword TokenKind. Identifiers are scanned
// first and reclassified here, so keywords only match whole words.
var keywords = map[string]TokenKind{
	"def":    DEF,
	"int":    INT,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"print":  PRINT,
}

// singles maps one-character operators and punctuation to their kind. '=' is
// absent: it needs a lookahead to tell ASSIGN from EQ.
var singles = map[byte]TokenKind{
	'+': PLUS,
	'-': MINUS,
	'*': TIMES,
	'/': DIVIDE,
	'<': LT,
	'>': GT,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	',': COMMA,
	';': SEMICOLON,
}

// LexOptions tunes Tokenize. The zero value is the standard LSI lexer.
type LexOptions struct {
	// AllowAdjacentOperators disables the adjacent arithmetic operator check.
	AllowAdjacentOperators bool
	// SkipComments discards '#' through end of line instead of reporting '#'.
	SkipComments bool
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src       string
	pos       int // byte index of the next character to consume
	line      int // current 1-based source line
	lineStart int // byte index where the current line begins
	opts      LexOptions

	tokens []Token
	errs   []*LexError
}

func newLexer(src string, opts LexOptions) *Lexer {
	return &Lexer{src: src, line: 1, opts: opts}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// peek returns the byte at the current position without advancing.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the byte one position ahead of the current position.
func (l *Lexer) peek2() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) column(start int) int {
	return start - l.lineStart
}

func (l *Lexer) fail(kind LexErrorKind, text string, start int) {
	l.errs = append(l.errs, &LexError{Kind: kind, Text: text, Line: l.line, Column: l.column(start)})
}

// emit appends a token unless it would make two arithmetic operators adjacent.
func (l *Lexer) emit(tok Token) {
	if !l.opts.AllowAdjacentOperators && tok.Kind.isArithmetic() && len(l.tokens) > 0 {
		prev := l.tokens[len(l.tokens)-1]
		if prev.Kind.isArithmetic() {
			l.errs = append(l.errs, &LexError{
				Kind:   AdjacentOperators,
				Text:   prev.Lexeme + tok.Lexeme,
				Line:   tok.Line,
				Column: tok.Column,
			})
			return
		}
	}
	l.tokens = append(l.tokens, tok)
}

// scanIdent collects a full identifier or keyword token.
// The first character (letter or '_') must still be at l.peek().
func (l *Lexer) scanIdent() {
	start := l.pos
	for l.pos < len(l.src) && (isLetter(l.peek()) || isDigit(l.peek())) {
		l.pos++
	}
	lexeme := l.src[start:l.pos]
	kind := ID
	if kw, ok := keywords[lexeme]; ok {
		kind = kw
	}
	l.emit(Token{Kind: kind, Lexeme: lexeme, Line: l.line, Column: l.column(start)})
}

// scanNum collects a decimal literal. The first digit must still be at l.peek().
// A literal too large for int is still emitted, with Value saturated to
// math.MaxInt, so the token stream keeps its shape.
func (l *Lexer) scanNum() {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.pos++
	}
	lexeme := l.src[start:l.pos]
	val, err := strconv.Atoi(lexeme)
	if err != nil {
		l.fail(IntegerOutOfRange, lexeme, start)
		val = math.MaxInt
	}
	l.emit(Token{Kind: NUM, Lexeme: lexeme, Value: val, Line: l.line, Column: l.column(start)})
}

func (l *Lexer) skipComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.pos++
	}
}

// next scans one lexeme, or skips one piece of whitespace, at l.pos.
func (l *Lexer) next() {
	ch := l.peek()
	start := l.pos

	switch {
	case isLetter(ch):
		l.scanIdent()
		return
	case isDigit(ch):
		l.scanNum()
		return
	}

	switch ch {
	case '\n':
		l.pos++
		l.line++
		l.lineStart = l.pos
		return
	case ' ', '\t', '\r':
		l.pos++
		return
	case '=':
		if l.peek2() == '=' { // lookahead: == must win over =
			l.pos += 2
			l.emit(Token{Kind: EQ, Lexeme: "==", Line: l.line, Column: l.column(start)})
			return
		}
		l.pos++
		l.emit(Token{Kind: ASSIGN, Lexeme: "=", Line: l.line, Column: l.column(start)})
		return
	case '#':
		if l.opts.SkipComments {
			l.skipComment()
			return
		}
	}

	if kind, ok := singles[ch]; ok {
		l.pos++
		l.emit(Token{Kind: kind, Lexeme: string(ch), Line: l.line, Column: l.column(start)})
		return
	}

	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	l.fail(UnrecognizedChar, l.src[start:l.pos], start)
}

// Tokenize scans src with the default options. It always returns every token
// it could classify, together with the lexical errors in discovery order.
func Tokenize(src string) ([]Token, []*LexError) {
	return TokenizeWithOptions(src, LexOptions{})
}

// TokenizeWithOptions is Tokenize with explicit options.
func TokenizeWithOptions(src string, opts LexOptions) ([]Token, []*LexError) {
	l := newLexer(src, opts)
	for l.pos < len(l.src) {
		l.next()
	}
	return l.tokens, l.errs
}
