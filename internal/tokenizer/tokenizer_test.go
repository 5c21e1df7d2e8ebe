package tokenizer

import (
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

type tokenCase struct {
	kind  string
	value string
}

// TestNewTokenizer_Tokens tests tokenization of the grammar's terminals.
func TestNewTokenizer_Tokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenCase
	}{
		{
			name:     "single comma",
			input:    ",",
			expected: []tokenCase{{TokenComma, ","}},
		},
		{
			name:     "single field",
			input:    "abc",
			expected: []tokenCase{{TokenField, "abc"}},
		},
		{
			name:     "newline",
			input:    "\n",
			expected: []tokenCase{{TokenNewline, "\n"}},
		},
		{
			name:     "carriage return is field content",
			input:    "a\r\n",
			expected: []tokenCase{{TokenField, "a\r"}, {TokenNewline, "\n"}},
		},
		{
			name:  "simple row",
			input: "a,b,c",
			expected: []tokenCase{
				{TokenField, "a"}, {TokenComma, ","},
				{TokenField, "b"}, {TokenComma, ","},
				{TokenField, "c"},
			},
		},
		{
			name:  "quoted field with comma",
			input: `"a,b"`,
			expected: []tokenCase{
				{TokenDQuote, `"`}, {TokenField, "a"}, {TokenComma, ","}, {TokenField, "b"}, {TokenDQuote, `"`},
			},
		},
		{
			name:  "leading space and tab",
			input: " \tx, y",
			expected: []tokenCase{
				{TokenSpace, " \t"}, {TokenField, "x"}, {TokenComma, ","}, {TokenSpace, " "}, {TokenField, "y"},
			},
		},
		{
			name:  "space after closing quote",
			input: `"nom" ,age`,
			expected: []tokenCase{
				{TokenDQuote, `"`}, {TokenField, "nom"}, {TokenDQuote, `"`},
				{TokenSpace, " "}, {TokenComma, ","}, {TokenField, "age"},
			},
		},
		{
			name:     "multibyte field",
			input:    "Besançon",
			expected: []tokenCase{{TokenField, "Besançon"}},
		},
		{
			name:     "empty quoted field",
			input:    `""`,
			expected: []tokenCase{{TokenDQuote, `"`}, {TokenDQuote, `"`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewTokenizer()
			tok.Initialize(tt.input)

			for i, exp := range tt.expected {
				token, ok := tok.NextToken()
				if !ok {
					t.Fatalf("token %d: expected token, got none (expected %s: %q)", i, exp.kind, exp.value)
				}
				if token.Kind() != exp.kind {
					t.Errorf("token %d: expected kind %s, got %s (value: %q)", i, exp.kind, token.Kind(), token.ValueString())
				}
				if token.ValueString() != exp.value {
					t.Errorf("token %d: expected value %q, got %q (kind: %s)", i, exp.value, token.ValueString(), token.Kind())
				}
			}

			if token, ok := tok.NextToken(); ok {
				t.Errorf("expected no more tokens, got %s: %q", token.Kind(), token.ValueString())
			}
		})
	}
}

// TestTokenizer_Stream tests tokenizing from a reader-backed stream.
func TestTokenizer_Stream(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString(`"field1",field2`)
		sb.WriteString("\n")
	}

	stream := tokenizer.NewStreamFromReader(strings.NewReader(sb.String()))
	tok := NewTokenizerWithStream(stream)

	tokenCount := 0
	for {
		_, ok := tok.NextToken()
		if !ok {
			if !stream.IsEos() {
				t.Fatalf("tokenization stopped after %d tokens, but not at EOS", tokenCount)
			}
			break
		}
		tokenCount++
	}

	// " field1 " , field2 \n = 6 tokens per row
	if want := 100 * 6; tokenCount != want {
		t.Errorf("expected %d tokens, got %d", want, tokenCount)
	}
}
