// Package lsi provides a lexer, a recursive-descent recognizer and a flat
// symbol table checker for the LSI teaching language.
//
// Pipeline: LSI source → Tokenize → Parse → ok / first error
package lsi
