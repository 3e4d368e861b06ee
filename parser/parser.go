// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package parser implements the structural parser from spec §4.2: it
// consumes the lexer's token stream and produces a Document AST,
// accumulating errors rather than aborting on local syntactic faults.
package parser

import (
	"strings"

	"github.com/ionl-lang/ionl/ast"
	"github.com/ionl-lang/ionl/lexer"
	"github.com/ionl-lang/ionl/token"
)

// Parser turns a token stream into a Document. It is single-use: create
// one per input via New or Parse.
type Parser struct {
	lx       *lexer.Lexer
	cur, nxt *token.Token
	doc      *ast.Document
}

// New creates a Parser over text, primed with one token of lookahead.
func New(text string) *Parser {
	lx := lexer.New(text)
	p := &Parser{lx: lx, doc: &ast.Document{}}
	p.cur = p.nextNonComment()
	p.nxt = p.nextNonComment()

	return p
}

// nextNonComment pulls tokens from the lexer, discarding comments:
// comments are lexed to preserve source positions in the stream (spec
// §4.1) but carry no structural meaning, so the parser treats them as
// trivia rather than attaching them to surrounding nodes (spec §1
// Non-goals).
func (p *Parser) nextNonComment() *token.Token {
	for {
		t := p.lx.Next()
		if t == nil || t.Kind != token.KindComment {
			return t
		}
	}
}

// Parse lexes and parses text in one call.
func Parse(text string) *ast.Document {
	return New(text).ParseDocument()
}

func (p *Parser) advance() {
	p.cur = p.nxt
	if p.cur == nil {
		p.nxt = nil
		return
	}

	p.nxt = p.nextNonComment()
}

// ParseDocument parses the whole input into a Document, per the grammar
// in spec §4.2.
func (p *Parser) ParseDocument() *ast.Document {
	var sections []*ast.Section

	for p.cur != nil {
		sec := p.parseSection()
		sections = append(sections, sec)
	}

	// Empty (or whitespace/comment-only) input still yields one empty
	// data section rather than zero sections (spec §8 boundary case).
	if len(sections) == 0 {
		sections = append(sections, &ast.Section{})
	}

	if len(sections) > 0 && isHeaderSection(sections[0]) {
		p.doc.Header = sections[0]
		p.doc.Sections = sections[1:]
	} else {
		p.doc.Sections = sections
	}

	p.renameDuplicateSections()

	return p.doc
}

// parseSection parses one "---"-delimited region (or the implicit first
// region) including its name/schema declaration and body.
func (p *Parser) parseSection() *ast.Section {
	sec := &ast.Section{}

	if p.cur != nil && p.cur.Kind == token.KindSectionSep {
		p.advance()
		p.parseSectionHeaderTail(sec)
	}

	sec.Child = p.parseBody()

	return sec
}

func (p *Parser) parseSectionHeaderTail(sec *ast.Section) {
	if p.cur != nil && p.cur.Kind == token.KindOpenString && p.cur.Sub == token.SubSectionName {
		sec.Name = p.cur
		p.advance()
	}

	if p.cur != nil && p.cur.Kind == token.KindColon {
		p.advance()

		if p.cur != nil && p.cur.Sub == token.SubSectionSchema {
			sec.Schema = p.cur
			p.advance()
		} else if p.cur != nil && p.cur.Kind == token.KindError {
			p.doc.AddError(p.cur.Err)
			p.advance()
		}

		return
	}

	if p.cur != nil && p.cur.Kind == token.KindError && p.cur.Err.Kind == token.ErrSchemaMissing {
		p.doc.AddError(p.cur.Err)
		p.advance()
	}
}

// parseBody parses a section's Object or Collection body.
func (p *Parser) parseBody() ast.Node {
	if p.cur == nil || p.cur.Kind == token.KindSectionSep {
		return nil
	}

	if p.cur.Kind == token.KindTilde {
		return p.parseCollection()
	}

	if p.cur.Kind == token.KindBraceOpen {
		return p.parseObject(true)
	}

	return p.parseObject(false)
}

func isHeaderSection(sec *ast.Section) bool {
	members := collectTopLevelMembers(sec.Child)
	if len(members) == 0 {
		return false
	}

	for _, m := range members {
		if m == nil {
			return false
		}

		key := m.KeyString()
		switch {
		case strings.HasPrefix(key, "$"):
			if _, ok := m.Value.(*ast.Object); !ok {
				return false
			}
		case strings.HasPrefix(key, "@"):
			// value-variable declaration, any value form is fine.
		default:
			return false
		}
	}

	return true
}

func collectTopLevelMembers(n ast.Node) []*ast.Member {
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

// renameDuplicateSections implements spec §3's auto-rename invariant:
// duplicate section names become "name_2", "name_3", ..., each flagged
// with a duplicate-section error.
func (p *Parser) renameDuplicateSections() {
	seen := make(map[string]int)

	for _, sec := range p.doc.Sections {
		name := sec.SectionName()
		if name == "" {
			continue
		}

		seen[name]++
		if n := seen[name]; n > 1 {
			renamed := name + "_" + itoa(n)
			sec.RenamedTo = renamed

			node := ast.Node(sec)
			if sec.Name != nil {
				node = &ast.TokenLeaf{Tok: sec.Name}
			}

			err := token.NewPosError(node, token.ErrDuplicateSection, "duplicate section name '"+name+"', renamed to '"+renamed+"'")
			p.doc.AddError(err)
		}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	neg := n < 0
	if neg {
		n = -n
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	if neg {
		pos--
		buf[pos] = '-'
	}

	return string(buf[pos:])
}
