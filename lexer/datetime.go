// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package lexer

import (
	"regexp"
	"time"

	"github.com/ionl-lang/ionl/token"
)

// referenceDate anchors time-only literals, per spec §6.
var referenceDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

var (
	reDate     = regexp.MustCompile(`^(\d{4})(-(\d{2}))?(-(\d{2}))?$`)
	reDateTime = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2})(:(\d{2}))?(:(\d{2}))?(Z|[+-]\d{2}:\d{2})?$`)
	reTime     = regexp.MustCompile(`^(\d{2})(:(\d{2}))?(:(\d{2}))?$`)
)

func (l *Lexer) lexDateTimeBody(start token.Pos, quote rune, want token.SubKind) *token.Token {
	raw := l.consumeQuotedBody(quote)
	inner := raw[1 : len(raw)-1]

	t, sub, err := parseDateTime(inner, want)
	if err != nil {
		end := l.pos()
		e := token.NewErrorToken(start, end, token.ErrInvalidDateTime, "invalid date/time literal")
		e.Err.Cause = err
		return e
	}

	prefix := map[token.SubKind]string{
		token.SubDateTime: "dt",
		token.SubDate:     "d",
		token.SubTime:     "t",
	}[want]

	literal := prefix + raw
	tok := token.NewToken(token.KindDateTime, sub, start, literal, token.DateTimeValue(t))

	return tok
}

// parseDateTime accepts the ISO-8601-like reductions named in spec §6:
// year; year-month; date; date-and-hour; date-hour-minute; date-hour-
// minute-second for "dt"/"d"; and HH / HH:MM / HH:MM:SS anchored to
// referenceDate for "t". Only the forms with an hour take an optional Z
// or ±HH:MM suffix; the date-only forms (year, year-month, date) and the
// time-only forms accept no suffix.
func parseDateTime(s string, want token.SubKind) (time.Time, token.SubKind, error) {
	loc := time.UTC

	if want == token.SubTime || (want != token.SubDateTime && reTime.MatchString(s) && !reDate.MatchString(s)) {
		if m := reTime.FindStringSubmatch(s); m != nil {
			h := atoiSafe(m[1])
			mi := atoiSafe(m[3])
			sec := atoiSafe(m[5])

			return time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(), h, mi, sec, 0, loc), token.SubTime, nil
		}
	}

	if m := reDateTime.FindStringSubmatch(s); m != nil {
		y, mo, d := atoiSafe(m[1]), atoiSafe(m[2]), atoiSafe(m[3])
		h := atoiSafe(m[4])
		mi := atoiSafe(m[6])
		sec := atoiSafe(m[8])

		loc := time.UTC
		if off := m[9]; off != "" && off != "Z" {
			if parsed, err := time.Parse("-07:00", off); err == nil {
				loc = parsed.Location()
			}
		}

		return time.Date(y, time.Month(mo), d, h, mi, sec, 0, loc), token.SubDateTime, nil
	}

	if m := reDate.FindStringSubmatch(s); m != nil {
		y := atoiSafe(m[1])
		mo := 1
		d := 1
		if m[3] != "" {
			mo = atoiSafe(m[3])
		}
		if m[5] != "" {
			d = atoiSafe(m[5])
		}

		return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, loc), token.SubDate, nil
	}

	return time.Time{}, token.SubNone, errInvalidDateTime(s)
}

type dateTimeError string

func (e dateTimeError) Error() string { return "invalid date/time literal: " + string(e) }

func errInvalidDateTime(s string) error { return dateTimeError(s) }

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}

	return n
}
