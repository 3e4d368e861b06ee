// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package lexer

import (
	"encoding/base64"
	"strings"

	"github.com/ionl-lang/ionl/token"
)

var simpleEscapes = map[rune]rune{
	'\\': '\\',
	'/':  '/',
	'"':  '"',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// lexQuoted scans a '"'-delimited string with the escape set from spec
// §4.1. Any other \X yields literal X rather than an error. An
// unterminated string at end-of-input is an error token.
func (l *Lexer) lexQuoted(delim rune, sub token.SubKind) *token.Token {
	start := l.pos()
	l.advance() // opening quote

	var sb strings.Builder
	var raw strings.Builder
	raw.WriteRune(delim)

	for {
		r, ok := l.peek()
		if !ok {
			end := l.pos()
			return token.NewErrorToken(start, end, token.ErrUnterminatedString, "string not closed")
		}

		if r == delim {
			l.advance()
			raw.WriteRune(delim)
			return token.NewToken(token.KindQuotedString, sub, start, raw.String(), token.StringValue(sb.String()))
		}

		if r == '\\' {
			l.advance()
			raw.WriteByte('\\')

			esc, ok := l.peek()
			if !ok {
				end := l.pos()
				return token.NewErrorToken(start, end, token.ErrUnterminatedString, "string not closed")
			}

			l.advance()
			raw.WriteRune(esc)

			if mapped, known := simpleEscapes[esc]; known {
				sb.WriteRune(mapped)
			} else {
				sb.WriteRune(esc)
			}

			continue
		}

		l.advance()
		raw.WriteRune(r)
		sb.WriteRune(r)
	}
}

// lexRaw scans a '\''-delimited string. No backslash escapes; '' encodes
// one literal quote and does not terminate. Unterminated raw strings at
// end-of-input are tolerated (spec §4.1).
func (l *Lexer) lexRaw() *token.Token {
	return l.scanRawBody(l.pos(), '\'')
}

// scanRawBody scans the body of a raw string starting at the current
// quote delimiter; a doubled delimiter encodes one literal delimiter.
// Used directly for plain raw strings, and via lexAnnotated for the
// r"..." / r'...' annotated form.
func (l *Lexer) scanRawBody(start token.Pos, quote rune) *token.Token {
	l.advance() // opening quote

	var sb strings.Builder
	var raw strings.Builder
	raw.WriteRune(quote)

	for {
		r, ok := l.peek()
		if !ok {
			// Unterminated raw string: tolerated, content taken literally.
			return token.NewToken(token.KindRawString, token.SubStringRaw, start, raw.String(), token.StringValue(sb.String()))
		}

		if r == quote {
			l.advance()
			raw.WriteRune(quote)

			if next, ok := l.peek(); ok && next == quote {
				// A doubled delimiter encodes one literal quote, does not terminate.
				l.advance()
				raw.WriteRune(quote)
				sb.WriteRune(quote)
				continue
			}

			return token.NewToken(token.KindRawString, token.SubStringRaw, start, raw.String(), token.StringValue(sb.String()))
		}

		l.advance()
		raw.WriteRune(r)
		sb.WriteRune(r)
	}
}

// lexAnnotated scans an annotated string: prefix letters immediately
// followed by a quote. Recognized prefixes are r (raw), b (bytes,
// base64), dt (date-time), d (date), t (time). Any other prefix produces
// an unsupported-annotation error token; scanning still resumes after the
// quoted body.
func (l *Lexer) lexAnnotated(prefix string, quote rune) *token.Token {
	start := l.pos()

	for range prefix {
		l.advance()
	}

	switch prefix {
	case "r":
		tok := l.scanRawBody(start, quote)
		tok.Literal = prefix + tok.Literal
		tok.End_ = token.EndFromLiteral(start, tok.Literal)
		return tok
	case "b":
		return l.lexBytesBody(start, quote)
	case "dt":
		return l.lexDateTimeBody(start, quote, token.SubDateTime)
	case "d":
		return l.lexDateTimeBody(start, quote, token.SubDate)
	case "t":
		return l.lexDateTimeBody(start, quote, token.SubTime)
	default:
		l.consumeQuotedBody(quote)
		end := l.pos()
		return token.NewErrorToken(start, end, token.ErrUnsupportedAnnotation, "unsupported annotation '"+prefix+"'")
	}
}

// consumeQuotedBody consumes a quote-delimited body (handling \-escapes
// for '"' bodies and ''-doubling for '\'' bodies) without decoding it,
// used to resynchronize after an unsupported annotation.
func (l *Lexer) consumeQuotedBody(quote rune) string {
	var raw strings.Builder
	l.advance() // opening quote
	raw.WriteRune(quote)

	for {
		r, ok := l.peek()
		if !ok {
			return raw.String()
		}

		if quote == '"' && r == '\\' {
			l.advance()
			raw.WriteByte('\\')
			if esc, ok := l.peek(); ok {
				l.advance()
				raw.WriteRune(esc)
			}
			continue
		}

		if r == quote {
			l.advance()
			raw.WriteRune(quote)

			if quote == '\'' {
				if next, ok := l.peek(); ok && next == '\'' {
					l.advance()
					raw.WriteByte('\'')
					continue
				}
			}

			return raw.String()
		}

		l.advance()
		raw.WriteRune(r)
	}
}

func (l *Lexer) lexBytesBody(start token.Pos, quote rune) *token.Token {
	raw := l.consumeQuotedBody(quote)
	inner := raw[1 : len(raw)-1]

	data, err := base64.StdEncoding.DecodeString(inner)
	if err != nil {
		end := l.pos()
		e := token.NewErrorToken(start, end, token.ErrInvalidBase64, "invalid base64 in binary string")
		e.Err.Cause = err
		return e
	}

	return token.NewToken(token.KindBinaryString, token.SubNone, start, "b"+raw, token.BytesValue(data))
}
