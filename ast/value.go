// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

import "github.com/ionl-lang/ionl/token"

// RawValue converts a node into a generic host value tree (map[string]any
// / []any / scalars), without any schema validation — this is the shape
// used for sections whose header declared no schema. resolveVar resolves
// "@name" tokens; pass nil to leave them as their literal decoded string.
func RawValue(n Node, resolveVar func(name string) (token.Value, bool)) interface{} {
	if n == nil {
		return nil
	}

	switch v := n.(type) {
	case *TokenLeaf:
		return scalarOf(v.ToValue(resolveVar))
	case *Object:
		return rawObject(v, resolveVar)
	case *Array:
		out := make([]interface{}, 0, len(v.Children))
		for _, c := range v.Children {
			out = append(out, RawValue(c, resolveVar))
		}
		return out
	case *Collection:
		out := make([]interface{}, 0, len(v.Rows))
		for _, r := range v.Rows {
			if r == nil {
				out = append(out, nil)
				continue
			}
			out = append(out, RawValue(r, resolveVar))
		}
		return out
	case *Error:
		return map[string]interface{}{"__error": v.Err.Error()}
	default:
		return nil
	}
}

func rawObject(o *Object, resolveVar func(name string) (token.Value, bool)) map[string]interface{} {
	out := make(map[string]interface{}, len(o.Members))
	pos := 0

	for _, m := range o.Members {
		if m == nil {
			continue
		}

		key := m.KeyString()
		if key == "" {
			key = itoaPositional(pos)
			pos++
		}

		out[key] = RawValue(m.Value, resolveVar)
	}

	return out
}

func scalarOf(v token.Value) interface{} {
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
	case token.ValMarker:
		return v.Str
	default:
		return nil
	}
}

func itoaPositional(i int) string {
	const digits = "0123456789"
	if i == 0 {
		return "0"
	}

	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = digits[i%10]
		i /= 10
	}

	return string(buf[pos:])
}
