// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package lexer

import (
	"testing"

	"github.com/ionl-lang/ionl/token"
)

func kinds(toks []*token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}

	return out
}

func sameKinds(t *testing.T, text string, want []token.Kind) []*token.Token {
	t.Helper()

	toks := Lex(text)
	got := kinds(toks)

	if len(got) != len(want) {
		t.Fatalf("Lex(%q) produced %d tokens %v, want %d %v", text, len(got), got, len(want), want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lex(%q)[%d] = %v, want %v", text, i, got[i], want[i])
		}
	}

	return toks
}

func TestLexEmpty(t *testing.T) {
	sameKinds(t, "", nil)
}

func TestLexOpenString(t *testing.T) {
	toks := sameKinds(t, "hello", []token.Kind{token.KindOpenString})
	if toks[0].Value.Str != "hello" {
		t.Fatalf("got %q, want %q", toks[0].Value.Str, "hello")
	}
}

func TestLexStructuralTokens(t *testing.T) {
	sameKinds(t, "{a: 1, b: [2, 3]}", []token.Kind{
		token.KindBraceOpen,
		token.KindOpenString, token.KindColon, token.KindNumber, token.KindComma,
		token.KindOpenString, token.KindColon,
		token.KindBracketOpen, token.KindNumber, token.KindComma, token.KindNumber, token.KindBracketClose,
		token.KindBraceClose,
	})
}

func TestLexQuotedString(t *testing.T) {
	toks := sameKinds(t, `"hello world"`, []token.Kind{token.KindQuotedString})
	if toks[0].Value.Str != "hello world" {
		t.Fatalf("got %q", toks[0].Value.Str)
	}
}

func TestLexComment(t *testing.T) {
	toks := sameKinds(t, "# a note\n", []token.Kind{token.KindComment})
	if toks[0].Value.Str != "a note" {
		t.Fatalf("got %q, want %q", toks[0].Value.Str, "a note")
	}
}

func TestLexBooleanAndNull(t *testing.T) {
	toks := sameKinds(t, "true false null", []token.Kind{
		token.KindBoolean, token.KindBoolean, token.KindNull,
	})
	if !toks[0].Value.Bool || toks[1].Value.Bool {
		t.Fatalf("boolean decoding wrong: %+v %+v", toks[0].Value, toks[1].Value)
	}
}

func TestLexNumberKinds(t *testing.T) {
	toks := sameKinds(t, "0x1F 0o17 0b101 42 3.14e2", []token.Kind{
		token.KindNumber, token.KindNumber, token.KindNumber, token.KindNumber, token.KindNumber,
	})

	subs := []token.SubKind{token.SubHex, token.SubOctal, token.SubBinary, token.SubDecimalInt, token.SubScientific}
	for i, want := range subs {
		if toks[i].Sub != want {
			t.Fatalf("token %d sub = %v, want %v", i, toks[i].Sub, want)
		}
	}
}

func TestLexSectionSeparator(t *testing.T) {
	sameKinds(t, "---\n", []token.Kind{token.KindSectionSep})
}

func TestLexTildeOnlyAtLineStart(t *testing.T) {
	toks := sameKinds(t, "~\n", []token.Kind{token.KindTilde})
	if toks[0].Literal != "~" {
		t.Fatalf("got literal %q", toks[0].Literal)
	}
}

func TestLexAnnotatedString(t *testing.T) {
	toks := Lex(`b"0102"`)
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1: %v", len(toks), kinds(toks))
	}
	if toks[0].Kind != token.KindBinaryString {
		t.Fatalf("kind = %v, want binary-string", toks[0].Kind)
	}
}
