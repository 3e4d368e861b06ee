// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package schema implements the schema compiler and processor from spec
// §4.3/§4.4: compiling a schema Object AST into a typed member-definition
// tree (Schema/MemberDef), then validating/normalizing data AST nodes
// against it, resolving variables and schema references through a
// Definitions table.
package schema

import (
	"regexp"

	"github.com/ionl-lang/ionl/token"
)

// MemberDef is the compiled description of one schema field: its type,
// flags, constraints, and dotted path from the schema root (spec §4.3,
// GLOSSARY).
type MemberDef struct {
	Name     string
	Type     string
	Optional bool
	Nullable bool
	HasDefault bool
	Default  token.Value
	Path     string

	// Constraints, populated only for the types that use them (spec
	// §4.4). Using explicit typed fields rather than a dynamic
	// map[string]any keeps validation free of ad-hoc coercions, per the
	// design note in spec §9.
	Choices              []token.Value
	Min, Max             *float64
	MinLength, MaxLength *int
	Pattern              string
	compiledPattern      *regexp.Regexp

	// Object typedef (nested schema or deferred "$Name" reference).
	Schema    *Schema
	SchemaRef string // deferred "$Name" reference, stored without the '$'; "" when not a reference

	// Array typedef.
	Of               *MemberDef
	MinLen, MaxLen   *int
}

// Schema is a compiled schema: an ordered field list, field definitions,
// and an open-schema policy (spec §4.3).
type Schema struct {
	Name  string
	Names []string // ordered; "*" never appears here (spec §8 invariant)
	Defs  map[string]*MemberDef
	Path  string

	// Open is one of: false (closed), true (accept any extra field), or
	// *MemberDef (accept any extra field of that type).
	Open interface{}
}

// OpenMemberDef returns the MemberDef extra fields must satisfy when
// Open is a typed open-schema sentinel, or nil otherwise.
func (s *Schema) OpenMemberDef() *MemberDef {
	if md, ok := s.Open.(*MemberDef); ok {
		return md
	}

	return nil
}

// IsOpenAny reports whether Open == true (untyped open schema).
func (s *Schema) IsOpenAny() bool {
	b, ok := s.Open.(bool)
	return ok && b
}

// IsClosed reports whether Open == false.
func (s *Schema) IsClosed() bool {
	b, ok := s.Open.(bool)
	return ok && !b
}
