package lsi

// Parser consumes the flat token slice produced by Tokenize and recognizes
// an LSI program. It builds no tree: the outcome is nil or the first error.
//
// Grammar:
//
//	program    = funcList | stmtList | ε                      (then end of input)
//	funcList   = funcDef { funcDef }
//	funcDef    = "def" ID "(" paramList ")" "{" stmtList "}"
//	paramList  = "int" ID { "," "int" ID } | ε
//	stmtList   = { stmt }
//	stmt       = "int" ID ( ";" | "=" expr ";" )
//	           | assignStmt ";"
//	           | "print" expr ";"
//	           | "return" ";"
//	           | ifStmt
//	           | "{" stmtList "}"
//	           | ";"
//	assignStmt = ID "=" ( call | expr )
//	call       = ID "(" callArgs ")"
//	callArgs   = ID { "," ID } | ε
//	ifStmt     = "if" "(" expr ")" stmt [ "else" stmt ]
//	expr       = numExpr { ("<" | ">" | "==") numExpr }
//	numExpr    = term { ("+" | "-") term }
//	term       = factor { ("*" | "/") factor }
//	factor     = NUM | "(" numExpr ")" | ID
//
// The top level dispatches on the first token only: a program is either a
// list of function definitions or a list of statements starting with "int".
type Parser struct {
	tokens []Token
	pos    int
	syms   *SymbolTable
}

// NewParser returns a parser over tokens with empty symbol tables.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens, syms: NewSymbolTable()}
}

// Parse recognizes tokens as one program.
func Parse(tokens []Token) error {
	return NewParser(tokens).Parse()
}

// Symbols exposes the tables filled so far.
func (p *Parser) Symbols() *SymbolTable {
	return p.syms
}

// peek returns the current token without consuming it. Past the last token it
// returns an EOF token positioned just after the last lexeme.
func (p *Parser) peek() Token {
	return p.peekAt(0)
}

// peekNext returns the token immediately after the current one.
func (p *Parser) peekNext() Token {
	return p.peekAt(1)
}

func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset < len(p.tokens) {
		return p.tokens[p.pos+offset]
	}
	if len(p.tokens) == 0 {
		return Token{Kind: EOF, Line: 1}
	}
	last := p.tokens[len(p.tokens)-1]
	return Token{Kind: EOF, Line: last.Line, Column: last.Column + len(last.Lexeme)}
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches kind, otherwise returns a
// syntax error.
func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, p.syntaxError(tok, kind)
	}
	return p.advance(), nil
}

func (p *Parser) syntaxError(tok Token, expected ...TokenKind) *ParseError {
	return &ParseError{Kind: SyntaxError, Expected: expected, Found: tok.Kind, Line: tok.Line, Column: tok.Column}
}

// useVariable checks that tok names a declared variable.
func (p *Parser) useVariable(tok Token) error {
	if _, ok := p.syms.LookupVariable(tok.Lexeme); !ok {
		return &ParseError{Kind: UndeclaredVariable, Found: tok.Kind, Name: tok.Lexeme, Line: tok.Line, Column: tok.Column}
	}
	return nil
}

// Parse runs the recognizer. It stops at the first error.
func (p *Parser) Parse() error {
	tok := p.peek()
	var err error
	switch tok.Kind {
	case DEF:
		err = p.parseFuncList()
	case INT:
		err = p.parseStmtList()
	case EOF:
		return nil
	default:
		return p.syntaxError(tok)
	}
	if err != nil {
		return err
	}
	if rest := p.peek(); rest.Kind != EOF {
		return p.syntaxError(rest, EOF)
	}
	return nil
}

func (p *Parser) parseFuncList() error {
	if err := p.parseFuncDef(); err != nil {
		return err
	}
	for p.peek().Kind == DEF {
		if err := p.parseFuncDef(); err != nil {
			return err
		}
	}
	return nil
}

// parseFuncDef declares the function before its body so that the body may
// call it.
func (p *Parser) parseFuncDef() error {
	if _, err := p.expect(DEF); err != nil {
		return err
	}
	nameTok, err := p.expect(ID)
	if err != nil {
		return err
	}
	p.syms.DeclareFunction(nameTok)

	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	arity, err := p.parseParamList()
	if err != nil {
		return err
	}
	p.syms.setArity(nameTok, arity)
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return err
	}
	if err := p.parseStmtList(); err != nil {
		return err
	}
	_, err = p.expect(RBRACE)
	return err
}

// parseParamList declares each parameter in the flat variable table and
// returns how many there were.
func (p *Parser) parseParamList() (int, error) {
	if p.peek().Kind != INT {
		return 0, nil
	}
	n := 0
	for {
		if _, err := p.expect(INT); err != nil {
			return n, err
		}
		idTok, err := p.expect(ID)
		if err != nil {
			return n, err
		}
		p.syms.DeclareVariable(idTok)
		n++
		if p.peek().Kind != COMMA {
			return n, nil
		}
		p.advance()
	}
}

// startsStmt reports whether kind is in FIRST(stmt).
func startsStmt(kind TokenKind) bool {
	switch kind {
	case INT, ID, PRINT, RETURN, IF, LBRACE, SEMICOLON:
		return true
	}
	return false
}

func (p *Parser) parseStmtList() error {
	for startsStmt(p.peek().Kind) {
		if err := p.parseStmt(); err != nil {
			return err
		}
	}
	return nil
}

// parseStmt dispatches to the correct sub-parser based on the leading token.
func (p *Parser) parseStmt() error {
	tok := p.peek()
	switch tok.Kind {
	case INT:
		return p.parseVarDecl()

	case ID:
		if err := p.useVariable(tok); err != nil {
			return err
		}
		if err := p.parseAssign(); err != nil {
			return err
		}
		_, err := p.expect(SEMICOLON)
		return err

	case PRINT:
		p.advance()
		if err := p.parseExpr(); err != nil {
			return err
		}
		_, err := p.expect(SEMICOLON)
		return err

	case RETURN:
		p.advance()
		_, err := p.expect(SEMICOLON)
		return err

	case IF:
		return p.parseIf()

	case LBRACE:
		p.advance()
		if err := p.parseStmtList(); err != nil {
			return err
		}
		_, err := p.expect(RBRACE)
		return err

	case SEMICOLON:
		p.advance()
		return nil
	}
	return p.syntaxError(tok)
}

// parseVarDecl parses  int ID ;  or  int ID = expr ;
// The name is declared before the initializer is parsed, so  int x = x;  is
// accepted.
func (p *Parser) parseVarDecl() error {
	if _, err := p.expect(INT); err != nil {
		return err
	}
	idTok, err := p.expect(ID)
	if err != nil {
		return err
	}
	p.syms.DeclareVariable(idTok)

	switch tok := p.peek(); tok.Kind {
	case SEMICOLON:
		p.advance()
		return nil
	case ASSIGN:
		p.advance()
		if err := p.parseExpr(); err != nil {
			return err
		}
		_, err := p.expect(SEMICOLON)
		return err
	default:
		return p.syntaxError(tok, SEMICOLON, ASSIGN)
	}
}

// parseAssign parses  ID = call  or  ID = expr. A call is recognized by
// peeking past the callee name for "(".
func (p *Parser) parseAssign() error {
	if _, err := p.expect(ID); err != nil {
		return err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return err
	}
	if p.peek().Kind == ID && p.peekNext().Kind == LPAREN {
		return p.parseCall()
	}
	return p.parseExpr()
}

func (p *Parser) parseCall() error {
	nameTok := p.peek()
	if nameTok.Kind == ID {
		if _, ok := p.syms.LookupFunction(nameTok.Lexeme); !ok {
			return &ParseError{Kind: UndeclaredFunction, Found: ID, Name: nameTok.Lexeme, Line: nameTok.Line, Column: nameTok.Column}
		}
	}
	if _, err := p.expect(ID); err != nil {
		return err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	if err := p.parseCallArgs(); err != nil {
		return err
	}
	_, err := p.expect(RPAREN)
	return err
}

// parseCallArgs accepts only variable names as arguments.
func (p *Parser) parseCallArgs() error {
	if p.peek().Kind != ID {
		return nil
	}
	for {
		if err := p.parseArg(); err != nil {
			return err
		}
		if p.peek().Kind != COMMA {
			return nil
		}
		p.advance()
	}
}

func (p *Parser) parseArg() error {
	tok := p.peek()
	if tok.Kind == ID {
		if err := p.useVariable(tok); err != nil {
			return err
		}
	}
	_, err := p.expect(ID)
	return err
}

// parseIf parses  if ( cond ) stmt [ else stmt ]
func (p *Parser) parseIf() error {
	if _, err := p.expect(IF); err != nil {
		return err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	if err := p.parseExpr(); err != nil {
		return err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	if err := p.parseStmt(); err != nil {
		return err
	}
	if p.peek().Kind == ELSE {
		p.advance()
		return p.parseStmt()
	}
	return nil
}

// parseExpr handles <, > and ==
func (p *Parser) parseExpr() error {
	if err := p.parseNumExpr(); err != nil {
		return err
	}
	for k := p.peek().Kind; k == LT || k == GT || k == EQ; k = p.peek().Kind {
		p.advance()
		if err := p.parseNumExpr(); err != nil {
			return err
		}
	}
	return nil
}

// parseNumExpr handles + and -
func (p *Parser) parseNumExpr() error {
	if err := p.parseTerm(); err != nil {
		return err
	}
	for k := p.peek().Kind; k == PLUS || k == MINUS; k = p.peek().Kind {
		p.advance()
		if err := p.parseTerm(); err != nil {
			return err
		}
	}
	return nil
}

// parseTerm handles * and /
func (p *Parser) parseTerm() error {
	if err := p.parseFactor(); err != nil {
		return err
	}
	for k := p.peek().Kind; k == TIMES || k == DIVIDE; k = p.peek().Kind {
		p.advance()
		if err := p.parseFactor(); err != nil {
			return err
		}
	}
	return nil
}

// parseFactor handles literals, variables, and parenthesised arithmetic.
// Comparisons are not allowed inside parentheses.
func (p *Parser) parseFactor() error {
	tok := p.peek()
	switch tok.Kind {
	case NUM:
		p.advance()
		return nil
	case LPAREN:
		p.advance()
		if err := p.parseNumExpr(); err != nil {
			return err
		}
		_, err := p.expect(RPAREN)
		return err
	case ID:
		if err := p.useVariable(tok); err != nil {
			return err
		}
		p.advance()
		return nil
	}
	return p.syntaxError(tok)
}
