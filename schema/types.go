// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ionl-lang/ionl/ast"
	"github.com/ionl-lang/ionl/defs"
	"github.com/ionl-lang/ionl/token"
)

// Context is threaded through validation: the Definitions table for
// "@name"/"$Name" resolution, and the Registry in effect (spec §4.4).
type Context struct {
	Defs     *defs.Definitions
	Registry *Registry
}

func registerBuiltins(r *Registry) {
	r.Register("string", validateString)
	r.Register("number", validateNumber)
	r.Register("bool", validateBool)
	r.Register("boolean", validateBool)
	r.Register("null", validateNull)
	r.Register("any", validateAny)
	r.Register("date", validateDateLike(token.SubDate))
	r.Register("datetime", validateDateLike(token.SubDateTime))
	r.Register("time", validateDateLike(token.SubTime))
	r.Register("object", validateObject)
	r.Register("array", validateArray)
	r.Register("binary", validateBinary)
	r.Register("bigint", validateBigInt)
	r.Register("decimal", validateDecimal)
}

// leafValue extracts the decoded, variable-resolved value from data when
// it is a scalar Token-leaf. The second result is false for
// container/error nodes.
func leafValue(data ast.Node, ctx *Context) (token.Value, bool) {
	leaf, ok := data.(*ast.TokenLeaf)
	if !ok {
		return token.Value{}, false
	}

	return leaf.ToValue(ctx.Defs.ResolveVar), true
}

func typeMismatch(data ast.Node, def *MemberDef, wanted string) []*token.PosError {
	return []*token.PosError{
		token.NewValidationError(data, token.ErrInvalidType, "expected "+wanted+" at "+def.Path),
	}
}

func validateString(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
	v, ok := leafValue(data, ctx)
	if !ok || v.Kind != token.ValString {
		return nil, typeMismatch(data, def, "string")
	}

	var errs []*token.PosError

	if def.MinLength != nil && len(v.Str) < *def.MinLength {
		errs = append(errs, token.NewValidationError(data, token.ErrLengthOutOfRange, "string shorter than minLength"))
	}
	if def.MaxLength != nil && len(v.Str) > *def.MaxLength {
		errs = append(errs, token.NewValidationError(data, token.ErrLengthOutOfRange, "string longer than maxLength"))
	}
	if def.compiledPattern != nil && !def.compiledPattern.MatchString(v.Str) {
		errs = append(errs, token.NewValidationError(data, token.ErrPatternMismatch, "string does not match pattern"))
	}
	if len(def.Choices) > 0 && !inChoices(v, def.Choices) {
		errs = append(errs, token.NewValidationError(data, token.ErrValueNotInChoices, "value not in choices"))
	}

	return v.Str, errs
}

func validateNumber(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
	v, ok := leafValue(data, ctx)
	if !ok || v.Kind != token.ValNumber {
		return nil, typeMismatch(data, def, "number")
	}

	var errs []*token.PosError

	if math.IsNaN(v.Num) {
		// NaN is never a member of any choices set (spec §9).
		if len(def.Choices) > 0 {
			errs = append(errs, token.NewValidationError(data, token.ErrValueNotInChoices, "NaN is never in choices"))
		}
	} else if len(def.Choices) > 0 && !inChoices(v, def.Choices) {
		errs = append(errs, token.NewValidationError(data, token.ErrValueNotInChoices, "value not in choices"))
	}

	if def.Min != nil && v.Num < *def.Min {
		errs = append(errs, token.NewValidationError(data, token.ErrOutOfRange, "value below min"))
	}
	if def.Max != nil && v.Num > *def.Max {
		errs = append(errs, token.NewValidationError(data, token.ErrOutOfRange, "value above max"))
	}

	return v.Num, errs
}

func validateBool(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
	v, ok := leafValue(data, ctx)
	if !ok || v.Kind != token.ValBool {
		return nil, typeMismatch(data, def, "bool")
	}

	if len(def.Choices) > 0 && !inChoices(v, def.Choices) {
		return v.Bool, []*token.PosError{token.NewValidationError(data, token.ErrValueNotInChoices, "value not in choices")}
	}

	return v.Bool, nil
}

func validateNull(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
	v, ok := leafValue(data, ctx)
	if !ok || v.Kind != token.ValNull {
		return nil, typeMismatch(data, def, "null")
	}

	return nil, nil
}

func validateAny(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
	if leaf, ok := data.(*ast.TokenLeaf); ok {
		v, _ := leafValue(leaf, ctx)
		return anyScalar(v), nil
	}

	return ast.RawValue(data, ctx.Defs.ResolveVar), nil
}

var dateLikeNames = map[token.SubKind]string{
	token.SubDate:     "date",
	token.SubTime:     "time",
	token.SubDateTime: "datetime",
}

func validateDateLike(sub token.SubKind) Validator {
	name := dateLikeNames[sub]

	return func(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
		v, ok := leafValue(data, ctx)
		if !ok || v.Kind != token.ValDateTime {
			return nil, typeMismatch(data, def, name)
		}

		return v.DateTime, nil
	}
}

func validateBinary(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
	v, ok := leafValue(data, ctx)
	if !ok || v.Kind != token.ValBytes {
		return nil, typeMismatch(data, def, "binary")
	}

	return v.Bytes, nil
}

func validateBigInt(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
	v, ok := leafValue(data, ctx)
	if !ok || v.Kind != token.ValBigInt {
		return nil, typeMismatch(data, def, "bigint")
	}

	return v.BigInt, nil
}

func validateDecimal(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
	v, ok := leafValue(data, ctx)
	if !ok {
		return nil, typeMismatch(data, def, "decimal")
	}

	switch v.Kind {
	case token.ValDecimal:
		return checkDecimalRange(data, def, v.Decimal)
	case token.ValNumber:
		return checkDecimalRange(data, def, decimal.NewFromFloat(v.Num))
	default:
		return nil, typeMismatch(data, def, "decimal")
	}
}

func checkDecimalRange(data ast.Node, def *MemberDef, d decimal.Decimal) (interface{}, []*token.PosError) {
	var errs []*token.PosError

	f, _ := d.Float64()
	if def.Min != nil && f < *def.Min {
		errs = append(errs, token.NewValidationError(data, token.ErrOutOfRange, "value below min"))
	}
	if def.Max != nil && f > *def.Max {
		errs = append(errs, token.NewValidationError(data, token.ErrOutOfRange, "value above max"))
	}

	return d, errs
}

func inChoices(v token.Value, choices []token.Value) bool {
	for _, c := range choices {
		if valuesEqual(v, c) {
			return true
		}
	}

	return false
}

func valuesEqual(a, b token.Value) bool {
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case token.ValString:
		return a.Str == b.Str
	case token.ValNumber:
		return a.Num == b.Num
	case token.ValBool:
		return a.Bool == b.Bool
	case token.ValNull:
		return true
	default:
		return false
	}
}

func anyScalar(v token.Value) interface{} {
	switch v.Kind {
	case token.ValString:
		return v.Str
	case token.ValNumber:
		return v.Num
	case token.ValBool:
		return v.Bool
	case token.ValNull:
		return nil
	case token.ValBigInt:
		return v.BigInt
	case token.ValDecimal:
		return v.Decimal
	case token.ValDateTime:
		return v.DateTime
	case token.ValBytes:
		return v.Bytes
	default:
		return v.Str
	}
}
