// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package defs implements the Definitions table from spec §4.3/§4.4: the
// "@name -> value" and "$Name -> Schema" mappings built from a document's
// header and consulted during schema compilation/validation.
//
// Definitions stores compiled schemas as opaque values (interface{})
// rather than a concrete *schema.Schema, so this package can sit below
// package schema in the dependency graph (schema imports defs, not the
// reverse), mirroring spec §2's stated order: "Definitions table" (4%)
// is listed as a dependency of the schema compiler/processor (14%/18%).
package defs

import "github.com/ionl-lang/ionl/token"

// Definitions is built once per document header and is read-only for the
// remainder of that document's processing (spec §3 Lifecycles).
type Definitions struct {
	vars    map[string]token.Value
	schemas map[string]interface{}
	// resolving tracks schema names currently being resolved, to detect
	// cyclic "$a -> $b -> $a" references (spec §9).
	resolving map[string]bool
}

// New creates an empty Definitions table.
func New() *Definitions {
	return &Definitions{
		vars:      make(map[string]token.Value),
		schemas:   make(map[string]interface{}),
		resolving: make(map[string]bool),
	}
}

// SetVar records an "@name" binding. Re-declaring a name overwrites the
// previous binding (last header declaration wins; the header itself is
// compiled top-to-bottom by the parser/compiler, not here).
func (d *Definitions) SetVar(name string, v token.Value) {
	d.vars[name] = v
}

// Var resolves "@name" (without the leading '@'). The bool result is
// false when the variable is not defined, letting the caller raise
// variableNotDefined per spec §4.4.
func (d *Definitions) Var(name string) (token.Value, bool) {
	v, ok := d.vars[name]
	return v, ok
}

// ResolveVar adapts Var to the resolveVar callback shape ast.TokenLeaf.
// ToValue and ast.RawValue expect.
func (d *Definitions) ResolveVar(name string) (token.Value, bool) {
	if d == nil {
		return token.Value{}, false
	}

	return d.Var(name)
}

// SetSchema records a "$Name" schema definition. The value is opaque
// here; package schema stores *schema.Schema and type-asserts it back.
func (d *Definitions) SetSchema(name string, s interface{}) {
	d.schemas[name] = s
}

// Schema resolves "$Name" (without the leading '$'). The bool result is
// false when no such schema was declared, letting the caller raise
// schemaNotDefined per spec §4.4.
func (d *Definitions) Schema(name string) (interface{}, bool) {
	s, ok := d.schemas[name]
	return s, ok
}

// BeginResolve marks name as currently being resolved, returning false
// (and not marking it) if name is already on the resolution stack —
// i.e. a cyclic schema reference. Callers must pair a successful
// BeginResolve with EndResolve.
func (d *Definitions) BeginResolve(name string) bool {
	if d.resolving[name] {
		return false
	}

	d.resolving[name] = true

	return true
}

// EndResolve clears name from the in-progress resolution stack.
func (d *Definitions) EndResolve(name string) {
	delete(d.resolving, name)
}

// SchemaNames returns the declared schema names, for diagnostics/tests.
func (d *Definitions) SchemaNames() []string {
	names := make([]string, 0, len(d.schemas))
	for k := range d.schemas {
		names = append(names, k)
	}

	return names
}

// SoleSchemaName returns the header's one declared schema name when
// exactly one schema was declared, false otherwise. Spec §2 states that
// "any section whose header declared a schema" is run through the
// processor; when the header is unambiguous about which schema that is
// (the single-schema case, as in spec §8 S3's bare "---" section), a
// data section with no explicit ": $Name" ref binds to it by default.
func (d *Definitions) SoleSchemaName() (string, bool) {
	if len(d.schemas) != 1 {
		return "", false
	}

	for k := range d.schemas {
		return k, true
	}

	return "", false
}
