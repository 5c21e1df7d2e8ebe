package csv_test

import (
	"strings"
	"testing"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

func TestTokenize(t *testing.T) {
	tokens := csv.Tokenize("\"nom\" ,age\n")

	wantKinds := []string{
		csv.TokenDQuote, csv.TokenField, csv.TokenDQuote,
		csv.TokenSpace, csv.TokenComma, csv.TokenField, csv.TokenNewline,
	}
	if len(tokens) != len(wantKinds) {
		t.Fatalf("Tokenize() = %d tokens, want %d: %+v", len(tokens), len(wantKinds), tokens)
	}

	var sb strings.Builder
	for i, tok := range tokens {
		if tok.Kind != wantKinds[i] {
			t.Errorf("token %d kind = %s, want %s", i, tok.Kind, wantKinds[i])
		}
		sb.WriteString(tok.Value)
	}
	if sb.String() != "\"nom\" ,age\n" {
		t.Errorf("token values = %q, want the input back", sb.String())
	}
}

func TestTokenize_Empty(t *testing.T) {
	if tokens := csv.Tokenize(""); len(tokens) != 0 {
		t.Errorf("Tokenize(\"\") = %+v, want none", tokens)
	}
}
