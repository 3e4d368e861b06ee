// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package lexer implements the streaming, single-pass tokenizer for the
// Format (spec §4.1). It never panics or returns an error across its
// public boundary: every scanning fault becomes an in-stream token of
// kind token.KindError, and scanning resumes at the next safe boundary.
package lexer

import (
	"strings"
	"unicode"

	"github.com/ionl-lang/ionl/token"
)

// Lexer scans a finite, in-memory rune sequence into a flat token stream.
// The whole input is held in memory up front (spec §1 Non-goals excludes
// unbounded streaming input), so positions are tracked with a simple
// index rather than the buffered-reader pushback the teacher's streaming
// lexer needs.
type Lexer struct {
	src []rune
	i   int

	row, col, off int

	// queue holds tokens produced ahead of Next()'s normal dispatch, used
	// to lex an entire "--- name : $Schema" header line as a unit once
	// the section-separator is recognized.
	queue []*token.Token
}

// New creates a Lexer over text. Carriage returns are normalized per
// spec §4.1 ("\r\n collapses to one newline, lone \r becomes \n") before
// scanning begins.
func New(text string) *Lexer {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return &Lexer{
		src: []rune(text),
		row: 1,
		col: 1,
	}
}

// Lex runs the lexer to completion and returns the full token stream.
func Lex(text string) []*token.Token {
	l := New(text)

	var toks []*token.Token
	for {
		t := l.Next()
		if t == nil {
			break
		}

		toks = append(toks, t)
	}

	return toks
}

func (l *Lexer) pos() token.Pos {
	return token.Pos{Row: l.row, Col: l.col, Off: l.off}
}

func (l *Lexer) eof() bool {
	return l.i >= len(l.src)
}

func (l *Lexer) peekAt(offset int) (rune, bool) {
	idx := l.i + offset
	if idx < 0 || idx >= len(l.src) {
		return 0, false
	}

	return l.src[idx], true
}

func (l *Lexer) peek() (rune, bool) {
	return l.peekAt(0)
}

func (l *Lexer) advance() rune {
	r := l.src[l.i]
	l.i++
	l.off++

	if r == '\n' {
		l.row++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

// atLineStart reports whether the lexer sits at column 1, i.e. either the
// very start of input or immediately after a newline. Section separators
// and collection-row markers are only recognized there (spec §4.1).
func (l *Lexer) atLineStart() bool {
	return l.col == 1
}

// isSpace implements the whitespace classification in spec §4.1.
func isSpace(r rune) bool {
	switch r {
	case 0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	if r >= 0x2000 && r <= 0x200A {
		return true
	}

	return r <= 0x0020
}

func isNewline(r rune) bool {
	return r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isStructural(r rune) bool {
	switch r {
	case '{', '}', '[', ']', ':', ',', '~':
		return true
	}

	return false
}

// isTerminator implements the open-string terminator set from spec §4.1.
func isTerminator(r rune) bool {
	if isStructural(r) {
		return true
	}
	switch r {
	case '#', '"', '\'':
		return true
	}

	return isSpace(r)
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r) && r < unicode.MaxASCII
}

// skipSpaceNonNewline advances over whitespace that is not a newline, leaving
// newlines for the caller (line-start detection depends on them).
func (l *Lexer) skipSpaceNonNewline() {
	for {
		r, ok := l.peek()
		if !ok || isNewline(r) || !isSpace(r) {
			return
		}

		l.advance()
	}
}

// Next returns the next token, or nil at end-of-input.
func (l *Lexer) Next() *token.Token {
	if len(l.queue) > 0 {
		t := l.queue[0]
		l.queue = l.queue[1:]
		return t
	}

	for {
		l.skipSpaceNonNewline()

		r, ok := l.peek()
		if !ok {
			return nil
		}

		if isNewline(r) {
			l.advance()
			continue
		}

		switch {
		case r == '#':
			return l.lexComment()
		case r == '"':
			return l.lexQuoted('"', token.SubStringRegular)
		case r == '\'':
			return l.lexRaw()
		case r == '{':
			return l.single(token.KindBraceOpen)
		case r == '}':
			return l.single(token.KindBraceClose)
		case r == '[':
			return l.single(token.KindBracketOpen)
		case r == ']':
			return l.single(token.KindBracketClose)
		case r == ':':
			return l.single(token.KindColon)
		case r == ',':
			return l.single(token.KindComma)
		case r == '~' && l.atLineStart():
			return l.single(token.KindTilde)
		case r == '~':
			start := l.pos()
			l.advance()
			return token.NewErrorToken(start, l.pos(), token.ErrInvalidChar, "'~' is a row marker only at the start of a line")
		case r == '-' && l.atLineStart():
			if t := l.tryLexSectionSep(); t != nil {
				return t
			}
			return l.lexOpenString()
		default:
			if prefix, quote, ok := l.peekAnnotationPrefix(); ok {
				return l.lexAnnotated(prefix, quote)
			}
			return l.lexOpenString()
		}
	}
}

func (l *Lexer) single(kind token.Kind) *token.Token {
	start := l.pos()
	r := l.advance()

	return token.NewToken(kind, token.SubNone, start, string(r), token.Value{})
}

func (l *Lexer) lexComment() *token.Token {
	start := l.pos()
	l.advance() // '#'

	var sb strings.Builder
	for {
		r, ok := l.peek()
		if !ok || isNewline(r) {
			break
		}

		sb.WriteRune(l.advance())
	}

	literal := "#" + sb.String()
	tok := token.NewToken(token.KindComment, token.SubNone, start, literal, token.StringValue(strings.TrimSpace(sb.String())))

	return tok
}

// peekAnnotationPrefix looks for a run of ASCII letters immediately
// followed by a quote, without consuming input. Per spec §4.1, this is
// what distinguishes an annotated string from a plain open string that
// happens to start with letters.
func (l *Lexer) peekAnnotationPrefix() (string, rune, bool) {
	if !isLetter(mustPeek(l, 0)) {
		return "", 0, false
	}

	var sb strings.Builder
	off := 0
	for {
		r, ok := l.peekAt(off)
		if !ok || !isLetter(r) {
			break
		}

		sb.WriteRune(r)
		off++
	}

	next, ok := l.peekAt(off)
	if !ok || (next != '"' && next != '\'') {
		return "", 0, false
	}

	return sb.String(), next, true
}

func mustPeek(l *Lexer, offset int) rune {
	r, ok := l.peekAt(offset)
	if !ok {
		return 0
	}

	return r
}
