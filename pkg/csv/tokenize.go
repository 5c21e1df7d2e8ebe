package csv

import (
	"github.com/shapestone/shape-csvtable/internal/tokenizer"
)

// Token kinds returned by Tokenize.
const (
	TokenComma   = tokenizer.TokenComma
	TokenDQuote  = tokenizer.TokenDQuote
	TokenNewline = tokenizer.TokenNewline
	TokenSpace   = tokenizer.TokenSpace
	TokenField   = tokenizer.TokenField
)

// Token is one lexical token of the input.
type Token struct {
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Tokenize splits input into tokens for diagnostics.
//
// Tokenization is context free and never fails: it does not validate the
// grammar, so "\"nom\" ,age" tokenizes fine while Parse rejects it. Positions
// are those reported by the Shape tokenizer.
func Tokenize(input string) []Token {
	tok := tokenizer.NewTokenizer()
	tok.Initialize(input)

	var tokens []Token
	for {
		t, ok := tok.NextToken()
		if !ok {
			break
		}
		tokens = append(tokens, Token{
			Kind:   t.Kind(),
			Value:  t.ValueString(),
			Offset: t.Offset(),
			Line:   t.Row(),
			Column: t.Column(),
		})
	}
	return tokens
}
