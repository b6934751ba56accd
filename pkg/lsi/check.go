package lsi

// Result is the outcome of running both phases over one source text.
type Result struct {
	Tokens    []Token
	LexErrors []*LexError
	Symbols   *SymbolTable
	// Err is the parse outcome; nil means the token sequence was accepted.
	Err error
}

// OK reports whether the source produced neither lexical nor parse errors.
func (r *Result) OK() bool {
	return len(r.LexErrors) == 0 && r.Err == nil
}

// Check tokenizes src and parses the resulting tokens. Lexical errors do not
// stop the parse: the parser sees whatever tokens were classified.
func Check(src string, opts LexOptions) *Result {
	tokens, lexErrs := TokenizeWithOptions(src, opts)
	p := NewParser(tokens)
	err := p.Parse()
	return &Result{
		Tokens:    tokens,
		LexErrors: lexErrs,
		Symbols:   p.Symbols(),
		Err:       err,
	}
}
