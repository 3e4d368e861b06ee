// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package lexer

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ionl-lang/ionl/token"
)

var (
	reHex    = regexp.MustCompile(`^[+-]?0[xX][0-9a-fA-F]+(n|m)?$`)
	reOctal  = regexp.MustCompile(`^[+-]?0[oO][0-7]+(n|m)?$`)
	reBinary = regexp.MustCompile(`^[+-]?0[bB][01]+(n|m)?$`)
	reDec    = regexp.MustCompile(`^[+-]?[0-9]+(n|m)?$`)
	reFrac   = regexp.MustCompile(`^[+-]?[0-9]+\.[0-9]+([eE][+-]?[0-9]+)?(m)?$`)
	reSci    = regexp.MustCompile(`^[+-]?[0-9]+[eE][+-]?[0-9]+$`)
)

// lexOpenString scans an unquoted "open" string: it runs until the next
// terminator, then is reclassified as a literal marker, a number, or left
// as open-string text, per spec §4.1.
func (l *Lexer) lexOpenString() *token.Token {
	start := l.pos()

	var sb strings.Builder
	for {
		r, ok := l.peek()
		if !ok || isTerminator(r) {
			break
		}

		sb.WriteRune(l.advance())
	}

	literal := sb.String()
	value := strings.TrimSpace(literal)

	return classifyOpenString(start, literal, value)
}

func classifyOpenString(start token.Pos, literal, value string) *token.Token {
	switch value {
	case "T", "true":
		return token.NewToken(token.KindBoolean, token.SubNone, start, literal, token.BoolValue(true))
	case "F", "false":
		return token.NewToken(token.KindBoolean, token.SubNone, start, literal, token.BoolValue(false))
	case "N", "null":
		return token.NewToken(token.KindNull, token.SubNone, start, literal, token.NullValue())
	case "Inf", "+Inf":
		return token.NewToken(token.KindNumber, token.SubDecimalInt, start, literal, token.NumberValue(math.Inf(1)))
	case "-Inf":
		return token.NewToken(token.KindNumber, token.SubDecimalInt, start, literal, token.NumberValue(math.Inf(-1)))
	case "NaN":
		return token.NewToken(token.KindNumber, token.SubDecimalInt, start, literal, token.NumberValue(math.NaN()))
	}

	if tok := tryNumber(start, literal, value); tok != nil {
		return tok
	}

	return token.NewToken(token.KindOpenString, token.SubStringOpen, start, literal, token.StringValue(value))
}

// tryNumber attempts to parse value as one of the numeric literal forms
// in spec §6. Returns nil when value is not a number, in which case the
// caller keeps the open-string kind.
func tryNumber(start token.Pos, literal, value string) *token.Token {
	switch {
	case reHex.MatchString(value):
		return parseBased(start, literal, value, 16, token.SubHex, 2)
	case reOctal.MatchString(value):
		return parseBased(start, literal, value, 8, token.SubOctal, 2)
	case reBinary.MatchString(value):
		return parseBased(start, literal, value, 2, token.SubBinary, 2)
	case reFrac.MatchString(value), reSci.MatchString(value):
		return parseDecimalForm(start, literal, value)
	case reDec.MatchString(value):
		return parseDecimalForm(start, literal, value)
	}

	return nil
}

// parseBased handles 0x/0o/0b literals, with optional sign and optional
// trailing n (big-int) / m (fixed-decimal) marker. prefixLen is the
// length of the "0x"/"0o"/"0b" marker, used to locate the digit run.
func parseBased(start token.Pos, literal, value string, base int, sub token.SubKind, prefixLen int) *token.Token {
	neg := false
	body := value
	if body[0] == '+' || body[0] == '-' {
		neg = body[0] == '-'
		body = body[1:]
	}

	digits := body[prefixLen:]
	trailing := byte(0)
	if n := len(digits); n > 0 && (digits[n-1] == 'n' || digits[n-1] == 'm') {
		trailing = digits[n-1]
		digits = digits[:n-1]
	}

	bi := new(big.Int)
	if _, ok := bi.SetString(digits, base); !ok {
		return nil
	}
	if neg {
		bi.Neg(bi)
	}

	switch trailing {
	case 'n':
		return token.NewToken(token.KindBigInt, sub, start, literal, token.BigIntValue(bi))
	case 'm':
		return token.NewToken(token.KindDecimal, sub, start, literal, token.DecimalValue(decimal.NewFromBigInt(bi, 0)))
	default:
		f := new(big.Float).SetInt(bi)
		v, _ := f.Float64()
		return token.NewToken(token.KindNumber, sub, start, literal, token.NumberValue(v))
	}
}

// parseDecimalForm handles plain decimal integers, fractional literals
// and scientific notation, with optional trailing n/m marker.
func parseDecimalForm(start token.Pos, literal, value string) *token.Token {
	trailing := byte(0)
	body := value
	if n := len(body); n > 0 && (body[n-1] == 'n' || body[n-1] == 'm') {
		trailing = body[n-1]
		body = body[:n-1]
	}

	switch trailing {
	case 'n':
		bi := new(big.Int)
		if _, ok := bi.SetString(body, 10); !ok {
			return nil
		}
		return token.NewToken(token.KindBigInt, token.SubDecimalInt, start, literal, token.BigIntValue(bi))
	case 'm':
		d, err := decimal.NewFromString(body)
		if err != nil {
			return nil
		}
		return token.NewToken(token.KindDecimal, token.SubDecimalInt, start, literal, token.DecimalValue(d))
	default:
		f, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return nil
		}

		sub := token.SubDecimalInt
		if strings.ContainsAny(body, "eE") {
			sub = token.SubScientific
		}

		return token.NewToken(token.KindNumber, sub, start, literal, token.NumberValue(f))
	}
}
