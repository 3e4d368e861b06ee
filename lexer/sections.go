// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package lexer

import (
	"strings"

	"github.com/ionl-lang/ionl/token"
)

// tryLexSectionSep recognizes "---" at column 1, and, when matched, also
// lexes the remainder of the header line (an optional name and an
// optional ": $Schema") into the queue so the caller gets back the
// "---" token first and the rest on subsequent Next() calls. Returns nil
// (consuming nothing) when the current position is not a section
// separator, so the caller falls back to open-string scanning.
func (l *Lexer) tryLexSectionSep() *token.Token {
	if mustPeek(l, 0) != '-' || mustPeek(l, 1) != '-' || mustPeek(l, 2) != '-' {
		return nil
	}
	if r, ok := l.peekAt(3); ok && r == '-' {
		// More than three dashes: not a recognized separator.
		return nil
	}

	start := l.pos()
	l.advance()
	l.advance()
	l.advance()
	sepTok := token.NewToken(token.KindSectionSep, token.SubNone, start, "---", token.Value{})

	l.lexSectionHeaderTail()

	return sepTok
}

// lexSectionHeaderTail scans the remainder of a "---" line: an optional
// name token, and an optional ": $Schema" token, queuing whatever it
// finds. Scanning stops at the next newline or end-of-input.
func (l *Lexer) lexSectionHeaderTail() {
	l.skipSpaceNonNewline()

	r, ok := l.peek()
	if !ok || isNewline(r) {
		return
	}

	if r != ':' {
		nameStart := l.pos()
		var sb strings.Builder
		for {
			r, ok := l.peek()
			if !ok || isNewline(r) || r == ':' {
				break
			}
			sb.WriteRune(l.advance())
		}

		name := strings.TrimSpace(sb.String())
		l.queue = append(l.queue, token.NewToken(token.KindOpenString, token.SubSectionName, nameStart, sb.String(), token.StringValue(name)))

		l.skipSpaceNonNewline()
	}

	r, ok = l.peek()
	if !ok || isNewline(r) {
		return
	}

	if r != ':' {
		return
	}

	colonStart := l.pos()
	l.advance()
	l.queue = append(l.queue, token.NewToken(token.KindColon, token.SubNone, colonStart, ":", token.Value{}))
	l.skipSpaceNonNewline()

	r, ok = l.peek()
	if !ok || isNewline(r) {
		errStart := l.pos()
		l.queue = append(l.queue, token.NewErrorToken(errStart, errStart, token.ErrSchemaMissing, "section separator ':' with no schema"))
		return
	}

	schemaStart := l.pos()
	var sb strings.Builder
	for {
		r, ok := l.peek()
		if !ok || isNewline(r) {
			break
		}
		sb.WriteRune(l.advance())
	}

	schema := strings.TrimSpace(sb.String())
	if !strings.HasPrefix(schema, "$") {
		l.queue = append(l.queue, token.NewErrorToken(schemaStart, l.pos(), token.ErrSchemaMissing, "expected $Schema reference"))
		return
	}

	l.queue = append(l.queue, token.NewToken(token.KindOpenString, token.SubSectionSchema, schemaStart, sb.String(), token.StringValue(schema)))
}
