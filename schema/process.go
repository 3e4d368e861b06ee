// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"github.com/ionl-lang/ionl/ast"
	"github.com/ionl-lang/ionl/defs"
	"github.com/ionl-lang/ionl/token"
)

// Process validates data against schemaOrRef (a *Schema, a schema name
// string without its leading '$', or nil) and returns a host value tree plus any
// diagnostics, per spec §4.4. Null data returns (nil, nil).
func Process(data ast.Node, schemaOrRef interface{}, d *defs.Definitions) (interface{}, []*token.PosError) {
	if d == nil {
		d = defs.New()
	}

	at := placeholderNode(data)

	s, err := resolveSchemaValue(schemaOrRef, d, at)
	if err != nil {
		return nil, []*token.PosError{err}
	}

	if data == nil {
		return nil, nil
	}

	ctx := &Context{Defs: d, Registry: Default()}

	switch v := data.(type) {
	case *ast.Collection:
		return processCollection(v, s, ctx)
	case *ast.Object:
		return processObject(v, s, ctx)
	case *ast.TokenLeaf:
		if v.Tok.Value.Kind == token.ValNull {
			return nil, nil
		}

		return nil, []*token.PosError{token.NewValidationError(data, token.ErrInvalidType, "expected an object or collection body")}
	default:
		return nil, []*token.PosError{token.NewValidationError(data, token.ErrInvalidType, "expected an object or collection body")}
	}
}

func placeholderNode(n ast.Node) token.Node {
	if n != nil {
		return n
	}

	return token.NewNode(token.Unknown, token.Unknown)
}

func resolveSchemaValue(schemaOrRef interface{}, d *defs.Definitions, at token.Node) (*Schema, *token.PosError) {
	switch v := schemaOrRef.(type) {
	case *Schema:
		return v, nil
	case string:
		return resolveSchemaRef(v, d, at)
	case nil:
		return nil, token.NewValidationError(at, token.ErrSchemaNotDefined, "no schema provided")
	default:
		return nil, token.NewValidationError(at, token.ErrInvalidSchema, "unsupported schema reference value")
	}
}

// resolveSchemaRef looks up "$name" in d, detecting cyclic references
// ("a -> b -> a") via d's resolution stack (spec §9).
func resolveSchemaRef(name string, d *defs.Definitions, at token.Node) (*Schema, *token.PosError) {
	if !d.BeginResolve(name) {
		return nil, token.NewValidationError(at, token.ErrCyclicSchemaRef, "cyclic schema reference: $"+name)
	}
	defer d.EndResolve(name)

	raw, ok := d.Schema(name)
	if !ok {
		return nil, token.NewValidationError(at, token.ErrSchemaNotDefined, "schema not defined: $"+name)
	}

	s, ok := raw.(*Schema)
	if !ok {
		return nil, token.NewValidationError(at, token.ErrInvalidSchema, "'$"+name+"' does not refer to a schema")
	}

	return s, nil
}

// processObject validates one data Object against Schema s, per spec
// §4.4's Object-validation steps 1-6.
func processObject(obj *ast.Object, s *Schema, ctx *Context) (map[string]interface{}, []*token.PosError) {
	out := make(map[string]interface{}, len(s.Names))
	var errs []*token.PosError

	byKey := make(map[string]*ast.Member, len(obj.Members))
	var positional []*ast.Member

	for _, m := range obj.Members {
		if m == nil {
			positional = append(positional, nil)
			continue
		}

		if m.Key != nil {
			key := m.KeyString()
			if _, exists := byKey[key]; !exists {
				byKey[key] = m
			}

			continue
		}

		positional = append(positional, m)
	}

	posIdx := 0

	for _, name := range s.Names {
		def := s.Defs[name]

		var dataNode ast.Node
		present := false

		if m, ok := byKey[name]; ok {
			dataNode = m.Value
			present = true
		} else if posIdx < len(positional) {
			if m := positional[posIdx]; m != nil {
				dataNode = m.Value
				present = true
			}
			posIdx++
		}

		if !present {
			if def.Optional {
				if def.HasDefault {
					out[name] = anyScalar(def.Default)
				}

				continue
			}

			errs = append(errs, token.NewValidationError(obj, token.ErrValueRequired, "missing required field '"+def.Path+"'"))

			continue
		}

		val, verrs := validateValue(dataNode, def, ctx)
		errs = append(errs, verrs...)
		out[name] = val
	}

	handled := make(map[string]bool, len(s.Names))
	for _, n := range s.Names {
		handled[n] = true
	}

	for _, m := range obj.Members {
		if m == nil || m.Key == nil {
			continue
		}

		key := m.KeyString()
		if handled[key] {
			continue
		}
		handled[key] = true

		errs = append(errs, processExtraField(key, m, s, ctx, out)...)
	}

	for ; posIdx < len(positional); posIdx++ {
		m := positional[posIdx]
		if m == nil {
			continue
		}

		key := itoaPositional(posIdx)
		errs = append(errs, processExtraField(key, m, s, ctx, out)...)
	}

	return out, errs
}

func processExtraField(key string, m *ast.Member, s *Schema, ctx *Context, out map[string]interface{}) []*token.PosError {
	switch {
	case s.IsClosed():
		return []*token.PosError{token.NewValidationError(m, token.ErrExtraField, "unexpected field '"+key+"'")}
	case s.IsOpenAny():
		out[key] = ast.RawValue(m.Value, ctx.Defs.ResolveVar)
		return nil
	default:
		md := s.OpenMemberDef()
		if md == nil {
			return []*token.PosError{token.NewValidationError(m, token.ErrExtraField, "unexpected field '"+key+"'")}
		}

		openDef := *md
		openDef.Path = joinPath(s.Path, key)

		val, errs := validateValue(m.Value, &openDef, ctx)
		out[key] = val

		return errs
	}
}

// processCollection validates each row as an Object against s, resetting
// the row index to 0 for this Collection (spec §4.4).
func processCollection(coll *ast.Collection, s *Schema, ctx *Context) ([]interface{}, []*token.PosError) {
	out := make([]interface{}, 0, len(coll.Rows))
	var errs []*token.PosError

	for i, row := range coll.Rows {
		switch v := row.(type) {
		case nil:
			out = append(out, nil)
		case *ast.Error:
			out = append(out, nil)
			e := token.NewValidationError(v, v.Err.Kind, v.Err.Message).WithIndex(i)
			errs = append(errs, e)
		case *ast.Object:
			val, rowErrs := processObject(v, s, ctx)
			out = append(out, val)
			for _, e := range rowErrs {
				errs = append(errs, e.WithIndex(i))
			}
		default:
			out = append(out, nil)
			errs = append(errs, token.NewValidationError(row, token.ErrInvalidType, "expected an object row").WithIndex(i))
		}
	}

	return out, errs
}

// validateValue applies the null/nullable gate common to every field and
// array-element slot, then dispatches to the registered type validator
// (spec §4.4 steps 3-4). A field explicitly typed "null" is exempt from
// the gate since its validator itself requires the null literal.
func validateValue(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
	if leaf, ok := data.(*ast.TokenLeaf); ok && def.Type != "null" {
		v := leaf.ToValue(ctx.Defs.ResolveVar)
		if v.Kind == token.ValNull {
			if !def.Nullable {
				return nil, []*token.PosError{token.NewValidationError(data, token.ErrNullNotAllowed, "null not allowed for '"+def.Path+"'")}
			}

			if def.HasDefault {
				return anyScalar(def.Default), nil
			}

			return nil, nil
		}
	}

	validator, ok := ctx.Registry.Get(def.Type)
	if !ok {
		return nil, []*token.PosError{token.NewValidationError(data, token.ErrInvalidType, "unknown type '"+def.Type+"'")}
	}

	return validator(data, def, ctx)
}

// validateObject is the "object" type validator (spec §4.4): requires an
// Object data node, resolving a deferred "$Name" schema reference lazily.
func validateObject(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
	obj, ok := data.(*ast.Object)
	if !ok {
		return nil, typeMismatch(data, def, "object")
	}

	s := def.Schema
	if s == nil && def.SchemaRef != "" {
		resolved, err := resolveSchemaRef(def.SchemaRef, ctx.Defs, data)
		if err != nil {
			return nil, []*token.PosError{err}
		}
		s = resolved

		// Keep the name on the resolution stack while its body is
		// validated, so a nested reference back to it is reported as cyclic.
		ctx.Defs.BeginResolve(def.SchemaRef)
		defer ctx.Defs.EndResolve(def.SchemaRef)
	}

	if s == nil {
		return nil, []*token.PosError{token.NewValidationError(data, token.ErrInvalidSchema, "object field '"+def.Path+"' has no schema")}
	}

	return processObject(obj, s, ctx)
}

// validateArray is the "array" type validator (spec §4.4): requires an
// Array data node, validating every element against def.Of.
func validateArray(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError) {
	arr, ok := data.(*ast.Array)
	if !ok {
		return nil, typeMismatch(data, def, "array")
	}

	of := def.Of
	if of == nil {
		of = &MemberDef{Type: "any", Path: def.Path + "[]"}
	}

	var errs []*token.PosError
	out := make([]interface{}, 0, len(arr.Children))

	for _, c := range arr.Children {
		val, verrs := validateValue(c, of, ctx)
		errs = append(errs, verrs...)
		out = append(out, val)
	}

	if def.MinLen != nil && len(arr.Children) < *def.MinLen {
		errs = append(errs, token.NewValidationError(data, token.ErrLengthOutOfRange, "array shorter than minLen"))
	}
	if def.MaxLen != nil && len(arr.Children) > *def.MaxLen {
		errs = append(errs, token.NewValidationError(data, token.ErrLengthOutOfRange, "array longer than maxLen"))
	}

	return out, errs
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
