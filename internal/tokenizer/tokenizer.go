package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a tokenizer for the CSV grammar.
//
// Matchers are tried in order:
//  1. Newline
//  2. Comma
//  3. Double quote
//  4. Space (spaces and tabs)
//  5. Field content (everything else)
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenNewline, "\n"),
		tokenizer.StringMatcherFunc(TokenComma, ","),
		tokenizer.StringMatcherFunc(TokenDQuote, `"`),
		SpaceMatcher(),
		FieldContentMatcher(),
	)
}

// NewTokenizerWithStream creates a tokenizer reading from a pre-configured stream.
func NewTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	tok := NewTokenizer()
	tok.InitializeFromStream(stream)
	return tok
}

// SpaceMatcher matches a run of spaces and tabs.
func SpaceMatcher() tokenizer.Matcher {
	return runMatcher(TokenSpace, func(b byte) bool {
		return b == ' ' || b == '\t'
	})
}

// FieldContentMatcher matches a run of bytes that are not a comma, quote,
// newline, space or tab.
//
// Grammar:
//
//	Field = Character+ ;
//	Character = <any character except , " \n space tab> ;
func FieldContentMatcher() tokenizer.Matcher {
	return runMatcher(TokenField, func(b byte) bool {
		return b != ',' && b != '"' && b != '\n' && b != ' ' && b != '\t'
	})
}

// runMatcher builds a matcher for the longest run of bytes accepted by in.
// All delimiters are ASCII, so multi-byte runes are always accepted as
// field content.
func runMatcher(kind string, in func(byte) bool) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if byteStream, ok := stream.(tokenizer.ByteStream); ok {
			return matchBytes(byteStream, kind, in)
		}
		return matchRunes(stream, kind, in)
	}
}

// matchBytes uses ByteStream for fast ASCII scanning.
func matchBytes(stream tokenizer.ByteStream, kind string, in func(byte) bool) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok || !in(b) {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}
	return tokenizer.NewToken(kind, []rune(string(stream.SliceFrom(startPos))))
}

// matchRunes is the fallback for streams without byte access.
func matchRunes(stream tokenizer.Stream, kind string, in func(byte) bool) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok {
			break
		}
		if r < 0x80 && !in(byte(r)) {
			break
		}
		if r >= 0x80 && kind != TokenField {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}
	return tokenizer.NewToken(kind, value)
}
