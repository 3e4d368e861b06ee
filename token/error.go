// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"fmt"
)

// Category distinguishes the two error surfaces named in spec §7: faults
// found while lexing/parsing the document structure, versus faults found
// while validating data against a schema.
type Category string

const (
	CategorySyntax     Category = "syntax"
	CategoryValidation Category = "validation"
)

// ErrKind is a stable, machine-checkable error identifier (e.g.
// "unterminated-string", "valueRequired"), per the taxonomy in spec §7.
type ErrKind string

// PosError is a single positional diagnostic: a message, an ErrKind, a
// Category, and the Node it refers to. It is the unit both the lexer's
// in-stream error tokens and the parser/processor's accumulated error
// lists are built from.
type PosError struct {
	Node     Node
	Kind     ErrKind
	Category Category
	Message  string
	// CollectionIndex is the zero-based row index within the enclosing
	// Collection, reset per section. -1 when not applicable.
	CollectionIndex int
	Cause           error
}

// NewPosError creates a syntax-category PosError at node with the given
// kind and message.
func NewPosError(node Node, kind ErrKind, msg string) *PosError {
	return &PosError{
		Node:            node,
		Kind:            kind,
		Category:        CategorySyntax,
		Message:         msg,
		CollectionIndex: -1,
	}
}

// NewValidationError creates a validation-category PosError.
func NewValidationError(node Node, kind ErrKind, msg string) *PosError {
	e := NewPosError(node, kind, msg)
	e.Category = CategoryValidation

	return e
}

// WithIndex attaches a collection row index and returns the receiver for
// chaining.
func (p *PosError) WithIndex(idx int) *PosError {
	p.CollectionIndex = idx
	return p
}

// WithCause attaches an underlying error and returns the receiver for
// chaining.
func (p *PosError) WithCause(err error) *PosError {
	p.Cause = err
	return p
}

func (p *PosError) Unwrap() error {
	return p.Cause
}

func (p *PosError) Error() string {
	pos := "?:?"
	if p.Node != nil {
		pos = p.Node.Begin().String()
	}

	if p.Cause != nil {
		return fmt.Sprintf("%s: %s (%s): %s", pos, p.Message, p.Kind, p.Cause.Error())
	}

	return fmt.Sprintf("%s: %s (%s)", pos, p.Message, p.Kind)
}

// Record is the user-visible failure shape from spec §7: a frozen
// snapshot of a PosError, detached from the Node interface so it survives
// outside the AST (e.g. serialized, or collected after the document is
// discarded).
type Record struct {
	Message         string
	Category        Category
	Kind            ErrKind
	Position        Pos
	EndPosition     Pos
	CollectionIndex int // -1 when not applicable
}

// NewRecord freezes a PosError into a Record.
func NewRecord(err *PosError) Record {
	r := Record{
		Message:         err.Message,
		Category:        err.Category,
		Kind:            err.Kind,
		CollectionIndex: err.CollectionIndex,
	}

	if err.Node != nil {
		r.Position = err.Node.Begin()
		r.EndPosition = err.Node.End()
	}

	return r
}
