// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the lexical class of a Token, per spec §3.
type Kind int

const (
	KindUnknown Kind = iota
	KindOpenString
	KindQuotedString
	KindRawString
	KindBinaryString
	KindDateTime
	KindNumber
	KindBigInt
	KindDecimal
	KindBoolean
	KindNull
	KindColon
	KindComma
	KindBraceOpen
	KindBraceClose
	KindBracketOpen
	KindBracketClose
	KindTilde
	KindSectionSep
	KindComment
	KindError
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindOpenString:
		return "open-string"
	case KindQuotedString:
		return "quoted-string"
	case KindRawString:
		return "raw-string"
	case KindBinaryString:
		return "binary-string"
	case KindDateTime:
		return "date-time"
	case KindNumber:
		return "number"
	case KindBigInt:
		return "big-int"
	case KindDecimal:
		return "decimal"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindColon:
		return ":"
	case KindComma:
		return ","
	case KindBraceOpen:
		return "{"
	case KindBraceClose:
		return "}"
	case KindBracketOpen:
		return "["
	case KindBracketClose:
		return "]"
	case KindTilde:
		return "~"
	case KindSectionSep:
		return "---"
	case KindComment:
		return "comment"
	case KindError:
		return "error"
	case KindEOF:
		return "eof"
	default:
		return "unknown"
	}
}

// SubKind refines Kind: number base, date/time variant, string form, or
// section-header role.
type SubKind int

const (
	SubNone SubKind = iota

	// Number sub-kinds.
	SubHex
	SubOctal
	SubBinary
	SubDecimalInt
	SubScientific

	// Date/time sub-kinds.
	SubDate
	SubTime
	SubDateTime

	// String sub-kinds.
	SubStringRegular
	SubStringRaw
	SubStringOpen

	// Section-header sub-kinds.
	SubSectionName
	SubSectionSchema
)

// ValueKind tags the decoded-value union carried by a Token.
type ValueKind int

const (
	ValNone ValueKind = iota
	ValString
	ValNumber
	ValBigInt
	ValDecimal
	ValBool
	ValNull
	ValDateTime
	ValBytes
	ValMarker // a structural marker, e.g. "*", no decoded payload
)

// Value is the tagged union of decoded token payloads named in spec §3.
// Exactly one field is meaningful, selected by Kind.
type Value struct {
	Kind     ValueKind
	Str      string
	Num      float64
	BigInt   *big.Int
	Decimal  decimal.Decimal
	Bool     bool
	DateTime time.Time
	Bytes    []byte
}

func StringValue(s string) Value   { return Value{Kind: ValString, Str: s} }
func NumberValue(f float64) Value  { return Value{Kind: ValNumber, Num: f} }
func BoolValue(b bool) Value       { return Value{Kind: ValBool, Bool: b} }
func NullValue() Value             { return Value{Kind: ValNull} }
func MarkerValue(s string) Value   { return Value{Kind: ValMarker, Str: s} }
func BigIntValue(b *big.Int) Value { return Value{Kind: ValBigInt, BigInt: b} }

func DecimalValue(d decimal.Decimal) Value {
	return Value{Kind: ValDecimal, Decimal: d}
}

func DateTimeValue(t time.Time) Value {
	return Value{Kind: ValDateTime, DateTime: t}
}

func BytesValue(b []byte) Value {
	return Value{Kind: ValBytes, Bytes: b}
}

// Token is a single lexical unit: its literal source text, a decoded
// Value, a Kind/SubKind pair, and its source range.
type Token struct {
	Literal string
	Value   Value
	Kind    Kind
	Sub     SubKind
	Start   Pos
	End_    Pos

	// Err is populated only when Kind == KindError: a diagnostic message
	// and the underlying scanning fault, if any.
	Err *PosError
}

func (t *Token) Begin() Pos { return t.Start }
func (t *Token) End() Pos   { return t.End_ }

// NewToken builds a Token whose End position is derived by walking
// newlines in literal from start.
func NewToken(kind Kind, sub SubKind, start Pos, literal string, val Value) *Token {
	return &Token{
		Literal: literal,
		Value:   val,
		Kind:    kind,
		Sub:     sub,
		Start:   start,
		End_:    EndFromLiteral(start, literal),
	}
}

// NewErrorToken builds a KindError token carrying a diagnostic. The lexer
// emits these in-stream rather than aborting, per spec §4.1.
func NewErrorToken(start, end Pos, kind ErrKind, msg string) *Token {
	t := &Token{
		Kind:  KindError,
		Start: start,
		End_:  end,
	}
	t.Err = &PosError{
		Node:            t,
		Kind:            kind,
		Category:        CategorySyntax,
		Message:         msg,
		CollectionIndex: -1,
	}

	return t
}
