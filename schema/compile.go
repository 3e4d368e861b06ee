// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"regexp"
	"strings"

	"github.com/ionl-lang/ionl/ast"
	"github.com/ionl-lang/ionl/defs"
	"github.com/ionl-lang/ionl/token"
)

// Compile compiles a schema body (an Object AST, typically the value of a
// "$Name" header member) into a Schema, per spec §4.3. Compile errors are
// returned rather than panicking; callers treat a non-empty error list as
// fatal for this compile call (no partial Schema is published).
func Compile(name string, obj *ast.Object, d *defs.Definitions) (*Schema, []*token.PosError) {
	var errs []*token.PosError

	s := compileFields(obj.Members, "", d, &errs)
	s.Name = name

	return s, errs
}

func compileFields(members []*ast.Member, path string, d *defs.Definitions, errs *[]*token.PosError) *Schema {
	s := &Schema{Path: path, Defs: make(map[string]*MemberDef)}

	var open interface{} = false

	for i, m := range members {
		last := i == len(members)-1

		if m == nil {
			*errs = append(*errs, token.NewPosError(token.NewNode(token.Unknown, token.Unknown), token.ErrEmptyMemberDef, "empty schema member"))
			continue
		}

		if m.Key == nil {
			leaf, ok := m.Value.(*ast.TokenLeaf)
			if !ok {
				*errs = append(*errs, token.NewPosError(m, token.ErrInvalidKey, "keyless schema member must be an open string"))
				continue
			}

			raw := leaf.Tok.Value.Str
			if raw == "*" {
				if !last {
					*errs = append(*errs, token.NewPosError(m, token.ErrStarPosition, "'*' must be the last schema member"))
					continue
				}

				open = true
				continue
			}

			fieldName, optional, nullable := splitNameSuffixes(raw)
			md := &MemberDef{Name: fieldName, Type: "any", Optional: optional, Nullable: nullable, Path: joinPath(path, fieldName)}
			registerField(s, fieldName, md, m, errs)

			continue
		}

		rawKey := m.KeyString()

		if rawKey == "*" {
			if !last {
				*errs = append(*errs, token.NewPosError(m, token.ErrStarPosition, "'*' must be the last schema member"))
				continue
			}

			md := compileFieldValue("*", m.Value, path, d, errs)
			open = md
			s.Defs["*"] = md

			continue
		}

		fieldName, optional, nullable := splitNameSuffixes(rawKey)
		md := compileFieldValue(fieldName, m.Value, path, d, errs)
		md.Optional = optional
		md.Nullable = nullable
		registerField(s, fieldName, md, m, errs)
	}

	if len(s.Names) == 0 {
		open = true
	}

	s.Open = open

	return s
}

func registerField(s *Schema, name string, md *MemberDef, at token.Node, errs *[]*token.PosError) {
	if _, exists := s.Defs[name]; exists {
		*errs = append(*errs, token.NewPosError(at, token.ErrDuplicateMember, "duplicate schema field '"+name+"'"))
		return
	}

	s.Defs[name] = md
	s.Names = append(s.Names, name)
}

// compileFieldValue compiles one field's type definition (spec §4.3
// "field syntactic forms" 1-2, 6-7, and the object shapes dispatched to
// compileObjectField for forms 3-5).
func compileFieldValue(name string, value ast.Node, path string, d *defs.Definitions, errs *[]*token.PosError) *MemberDef {
	fieldPath := joinPath(path, name)

	switch v := value.(type) {
	case *ast.TokenLeaf:
		typeName := v.Tok.Value.Str
		md := &MemberDef{Name: name, Path: fieldPath}
		applyTypeName(md, typeName)

		return md

	case *ast.Array:
		return compileArrayField(name, v, fieldPath, d, errs)

	case *ast.Object:
		return compileObjectField(name, v, fieldPath, d, errs)

	default:
		*errs = append(*errs, token.NewPosError(value, token.ErrInvalidSchema, "invalid schema value for field '"+name+"'"))
		return &MemberDef{Name: name, Type: "any", Path: fieldPath}
	}
}

func applyTypeName(md *MemberDef, typeName string) {
	if strings.HasPrefix(typeName, "$") {
		md.Type = "object"
		md.SchemaRef = typeName[1:]

		return
	}

	md.Type = typeName
}

// compileArrayField handles forms 6/7: "key: []" (array of any) and
// "key: [type|$Name|{...}|[...]]" (array of exactly one typedef).
func compileArrayField(name string, arr *ast.Array, fieldPath string, d *defs.Definitions, errs *[]*token.PosError) *MemberDef {
	md := &MemberDef{Name: name, Type: "array", Path: fieldPath}

	switch len(arr.Children) {
	case 0:
		md.Of = &MemberDef{Type: "any", Path: fieldPath + "[]"}
	case 1:
		md.Of = compileFieldValue(name, arr.Children[0], fieldPath+"[]", d, errs)
		md.Of.Path = fieldPath + "[]"
	default:
		*errs = append(*errs, token.NewPosError(arr, token.ErrInvalidSchema, "array typedef must have zero or one element"))
		md.Of = &MemberDef{Type: "any", Path: fieldPath + "[]"}
	}

	return md
}

// compileObjectField dispatches an Object-shaped field value across forms
// 3 (positional-type shorthand), 4 (keyed "type:" typedef), and 5 (nested
// object schema with no type indicator).
func compileObjectField(name string, obj *ast.Object, fieldPath string, d *defs.Definitions, errs *[]*token.PosError) *MemberDef {
	if len(obj.Members) == 0 {
		return &MemberDef{
			Name: name, Type: "object", Path: fieldPath,
			Schema: &Schema{Path: fieldPath, Defs: make(map[string]*MemberDef), Open: true},
		}
	}

	first := obj.Members[0]

	if first != nil && first.Key == nil {
		if leaf, ok := first.Value.(*ast.TokenLeaf); ok && isTypeIndicator(leaf.Tok.Value.Str) {
			return buildTypeWithConstraints(name, leaf.Tok.Value.Str, obj.Members[1:], fieldPath, d, errs)
		}
	}

	if first != nil && first.Key != nil && first.KeyString() == "type" {
		if leaf, ok := first.Value.(*ast.TokenLeaf); ok {
			return buildTypeWithConstraints(name, leaf.Tok.Value.Str, obj.Members[1:], fieldPath, d, errs)
		}
	}

	nested := compileFields(obj.Members, fieldPath, d, errs)

	return &MemberDef{Name: name, Type: "object", Path: fieldPath, Schema: nested}
}

func isTypeIndicator(s string) bool {
	if strings.HasPrefix(s, "$") {
		return true
	}

	_, ok := Default().Get(s)
	return ok
}

func buildTypeWithConstraints(name, typeName string, constraints []*ast.Member, fieldPath string, d *defs.Definitions, errs *[]*token.PosError) *MemberDef {
	md := &MemberDef{Name: name, Path: fieldPath}
	applyTypeName(md, typeName)

	for _, cm := range constraints {
		if cm == nil || cm.Key == nil {
			continue
		}

		applyConstraint(md, cm.KeyString(), cm.Value, d, errs)
	}

	return md
}

func applyConstraint(md *MemberDef, key string, value ast.Node, d *defs.Definitions, errs *[]*token.PosError) {
	switch key {
	case "choices":
		arr, ok := value.(*ast.Array)
		if !ok {
			*errs = append(*errs, token.NewPosError(value, token.ErrInvalidSchema, "'choices' must be an array"))
			return
		}

		for _, c := range arr.Children {
			leaf, ok := c.(*ast.TokenLeaf)
			if !ok {
				continue
			}

			md.Choices = append(md.Choices, leaf.ToValue(d.ResolveVar))
		}

	case "min":
		md.Min = floatPtr(value)
	case "max":
		md.Max = floatPtr(value)
	case "minLength":
		md.MinLength = intPtr(value)
	case "maxLength":
		md.MaxLength = intPtr(value)
	case "minLen":
		md.MinLen = intPtr(value)
	case "maxLen":
		md.MaxLen = intPtr(value)
	case "pattern":
		leaf, ok := value.(*ast.TokenLeaf)
		if !ok {
			*errs = append(*errs, token.NewPosError(value, token.ErrInvalidSchema, "'pattern' must be a string"))
			return
		}

		md.Pattern = leaf.Tok.Value.Str

		re, err := regexp.Compile(md.Pattern)
		if err != nil {
			*errs = append(*errs, token.NewPosError(value, token.ErrInvalidSchema, "invalid 'pattern': "+err.Error()))
			return
		}

		md.compiledPattern = re

	case "default":
		leaf, ok := value.(*ast.TokenLeaf)
		if !ok {
			*errs = append(*errs, token.NewPosError(value, token.ErrInvalidSchema, "'default' must be a scalar"))
			return
		}

		md.HasDefault = true
		md.Default = leaf.ToValue(d.ResolveVar)
	}
}

// splitNameSuffixes strips the "?" (optional) and "*" (nullable)
// name-suffix flags, in either order, per spec §4.3.
func splitNameSuffixes(raw string) (name string, optional, nullable bool) {
	name = raw

	for {
		switch {
		case strings.HasSuffix(name, "?"):
			optional = true
			name = name[:len(name)-1]
		case strings.HasSuffix(name, "*"):
			nullable = true
			name = name[:len(name)-1]
		default:
			return name, optional, nullable
		}
	}
}

func joinPath(parent, field string) string {
	if parent == "" {
		return field
	}

	return parent + "." + field
}

func numberOf(n ast.Node) (float64, bool) {
	leaf, ok := n.(*ast.TokenLeaf)
	if !ok || leaf.Tok.Value.Kind != token.ValNumber {
		return 0, false
	}

	return leaf.Tok.Value.Num, true
}

func floatPtr(n ast.Node) *float64 {
	f, ok := numberOf(n)
	if !ok {
		return nil
	}

	return &f
}

func intPtr(n ast.Node) *int {
	f, ok := numberOf(n)
	if !ok {
		return nil
	}

	i := int(f)

	return &i
}
