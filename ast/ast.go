// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ast defines the typed AST produced by the structural parser
// (spec §3): Document, Section, Object, Array, Collection, Member,
// TokenLeaf, and Error nodes. Nodes are a tagged sum rather than a class
// hierarchy; callers type-switch on Kind() at processor/printer
// boundaries, per the design note in spec §9.
//
// This package depends only on token: it has no knowledge of schemas or
// definitions, which live one layer up (packages defs and schema). The
// "validated value tree" half of the toJSON contract is therefore
// composed at the root package, not here; see DESIGN.md.
package ast

import "github.com/ionl-lang/ionl/token"

// Kind tags the AST node variants from spec §3.
type Kind int

const (
	KindDocument Kind = iota
	KindSection
	KindObject
	KindArray
	KindCollection
	KindMember
	KindTokenLeaf
	KindError
)

// Node is the shared interface every AST node variant implements.
type Node interface {
	token.Node
	Kind() Kind
}

// Document is the root node: an optional header Section, an ordered list
// of data Sections, and an accumulated error list (spec §3, §7).
type Document struct {
	Header   *Section
	Sections []*Section
	Errors   []*token.PosError
}

func (d *Document) Kind() Kind { return KindDocument }

func (d *Document) Begin() token.Pos {
	if d.Header != nil {
		return d.Header.Begin()
	}
	if len(d.Sections) > 0 {
		return d.Sections[0].Begin()
	}

	return token.Unknown
}

func (d *Document) End() token.Pos {
	if n := len(d.Sections); n > 0 {
		return d.Sections[n-1].End()
	}
	if d.Header != nil {
		return d.Header.End()
	}

	return token.Unknown
}

// AddError appends a diagnostic to the document's accumulated error
// list, per the "accumulate rather than abort" policy in spec §1/§7.
func (d *Document) AddError(err *token.PosError) {
	d.Errors = append(d.Errors, err)
}

// Section is a document region starting at a "---" separator, or the
// implicit section at the top of the file (spec §3, GLOSSARY).
type Section struct {
	Name   *token.Token // nil when unnamed
	Schema *token.Token // nil when no schema reference was declared
	Child  Node         // *Object | *Collection | nil

	// RenamedTo overrides SectionName when the parser auto-renamed this
	// section to resolve a duplicate (spec §3 invariant: "name", "name_2",
	// "name_3", ...).
	RenamedTo string
}

func (s *Section) Kind() Kind { return KindSection }

func (s *Section) Begin() token.Pos {
	if s.Name != nil {
		return s.Name.Begin()
	}
	if s.Child != nil {
		return s.Child.Begin()
	}

	return token.Unknown
}

func (s *Section) End() token.Pos {
	if s.Child != nil {
		return s.Child.End()
	}
	if s.Schema != nil {
		return s.Schema.End()
	}
	if s.Name != nil {
		return s.Name.End()
	}

	return token.Unknown
}

// SectionName returns the section's effective name (reflecting any
// auto-rename), or "" when unnamed.
func (s *Section) SectionName() string {
	if s.RenamedTo != "" {
		return s.RenamedTo
	}
	if s.Name == nil {
		return ""
	}

	return s.Name.Value.Str
}

// SchemaRefName returns the declared "$Name" schema reference text, or ""
// when the section has none.
func (s *Section) SchemaRefName() string {
	if s.Schema == nil {
		return ""
	}

	return s.Schema.Value.Str
}
