// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ionl is the root of the core engine: it composes the lexer,
// parser, definitions table, and schema compiler/processor behind the
// three boundary operations from spec §6 — Parse, CompileSchema, and
// Document.ToJSON.
//
// ast depends only on token; schema depends on ast and defs; defs stores
// compiled schemas as opaque values so it never imports schema. This
// package is where those layers meet: Document composes *ast.Document
// with *defs.Definitions and calls into schema.Process for sections that
// declare a schema, ast.RawValue otherwise. See DESIGN.md.
package ionl

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ionl-lang/ionl/ast"
	"github.com/ionl-lang/ionl/defs"
	"github.com/ionl-lang/ionl/parser"
	"github.com/ionl-lang/ionl/schema"
	"github.com/ionl-lang/ionl/token"
)

// Options configures Parse and CompileSchema (spec §6). Filename feeds
// future position-reporting needs; MaxDepth, when nonzero, is reserved
// for a nesting-depth guard on recursive descent.
type Options struct {
	Filename string
	MaxDepth int
}

// Document is the result of Parse: the structural AST plus the
// definitions table built from its header.
type Document struct {
	ID   uuid.UUID
	AST  *ast.Document
	Defs *defs.Definitions
}

// Parse lexes and parses text, then compiles any header-declared schemas
// and records header-declared variables, returning the combined syntax
// and header-compile diagnostics.
func Parse(text string, opts Options) (*Document, []*token.PosError) {
	doc := parser.Parse(text)

	d, herrs := buildDefinitions(doc)

	errs := make([]*token.PosError, 0, len(doc.Errors)+len(herrs))
	errs = append(errs, doc.Errors...)
	errs = append(errs, herrs...)

	return &Document{ID: uuid.New(), AST: doc, Defs: d}, errs
}

// CompileSchema parses schemaText as a standalone schema body (an Object,
// optionally preceded by a header declaring variables it references) and
// compiles it into a Schema (spec §6).
func CompileSchema(name, schemaText string, opts Options) (*schema.Schema, []*token.PosError) {
	doc := parser.Parse(schemaText)

	d, herrs := buildDefinitions(doc)

	body := schemaBody(doc)

	obj, ok := body.(*ast.Object)
	if !ok {
		at := placeholderFor(doc)
		err := token.NewPosError(at, token.ErrInvalidSchema, "schema text must compile to a single object")

		return nil, append(append([]*token.PosError{}, herrs...), err)
	}

	s, errs := schema.Compile(name, obj, d)

	out := make([]*token.PosError, 0, len(doc.Errors)+len(herrs)+len(errs))
	out = append(out, doc.Errors...)
	out = append(out, herrs...)
	out = append(out, errs...)

	return s, out
}

func placeholderFor(doc *ast.Document) token.Node {
	if len(doc.Sections) > 0 {
		return doc.Sections[0]
	}

	return token.NewNode(token.Unknown, token.Unknown)
}

func schemaBody(doc *ast.Document) ast.Node {
	if len(doc.Sections) > 0 {
		return doc.Sections[0].Child
	}
	if doc.Header != nil {
		return doc.Header.Child
	}

	return nil
}

// buildDefinitions compiles a document's header (spec §4.3/§4.4): each
// "$Name" member becomes a compiled Schema, each "@name" member becomes a
// variable binding, both visible to later header members in source order.
func buildDefinitions(doc *ast.Document) (*defs.Definitions, []*token.PosError) {
	d := defs.New()

	if doc.Header == nil {
		return d, nil
	}

	var errs []*token.PosError

	for _, m := range headerMembers(doc.Header.Child) {
		if m == nil || m.Key == nil {
			continue
		}

		key := m.KeyString()

		switch {
		case strings.HasPrefix(key, "@"):
			if leaf, ok := m.Value.(*ast.TokenLeaf); ok {
				d.SetVar(key[1:], leaf.ToValue(d.ResolveVar))
			}

		case strings.HasPrefix(key, "$"):
			name := key[1:]

			obj, ok := m.Value.(*ast.Object)
			if !ok {
				errs = append(errs, token.NewPosError(m, token.ErrInvalidSchema, "schema '$"+name+"' must be an object"))
				continue
			}

			s, serrs := schema.Compile(name, obj, d)
			errs = append(errs, serrs...)
			if len(serrs) > 0 {
				continue
			}
			d.SetSchema(name, s)
		}
	}

	return d, errs
}

// headerMembers flattens a header section's body — a bare Object, or a
// Collection whose rows are Objects (spec §8 S3) — into one member list.
func headerMembers(n ast.Node) []*ast.Member {
	switch v := n.(type) {
	case *ast.Object:
		return v.Members
	case *ast.Collection:
		var all []*ast.Member
		for _, r := range v.Rows {
			if obj, ok := r.(*ast.Object); ok {
				all = append(all, obj.Members...)
			}
		}

		return all
	default:
		return nil
	}
}

// ToJSON converts doc into a host value tree, validating each
// schema-declared section against its schema and leaving unschema'd
// sections as raw values (spec §4.4, §6). A section with no explicit
// ": $Name" ref still binds to the header's schema when exactly one was
// declared there (spec §2, §8 S3). Diagnostics are frozen into Records
// so they outlive the AST.
func (doc *Document) ToJSON() (map[string]interface{}, []token.Record) {
	out := make(map[string]interface{}, len(doc.AST.Sections))

	var records []token.Record
	for _, e := range doc.AST.Errors {
		records = append(records, token.NewRecord(e))
	}

	for _, sec := range doc.AST.Sections {
		name := sec.SectionName()
		refName := sec.SchemaRefName()

		if refName == "" {
			if sole, ok := doc.Defs.SoleSchemaName(); ok {
				refName = "$" + sole
			}
		}

		var val interface{}

		var errs []*token.PosError
		if refName != "" {
			val, errs = schema.Process(sec.Child, strings.TrimPrefix(refName, "$"), doc.Defs)
		} else {
			val = ast.RawValue(sec.Child, doc.Defs.ResolveVar)
		}

		for _, e := range errs {
			records = append(records, token.NewRecord(e))
		}

		out[name] = val
	}

	return out, records
}
