// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/ionl-lang/ionl/ast"
	"github.com/ionl-lang/ionl/token"
)

// parseCollection parses a run of "~"-marked rows, per spec §4.2.
func (p *Parser) parseCollection() *ast.Collection {
	coll := &ast.Collection{}

	for p.cur != nil && p.cur.Kind != token.KindSectionSep {
		if p.cur.Kind != token.KindTilde {
			// Syntactic fault at collection level: discard the rest of
			// the row, record an Error node, resume at the next row
			// marker or section boundary (spec §4.2 error policy).
			t := p.cur
			err := token.NewPosError(t, token.ErrUnexpectedToken, "unexpected token in collection, expected '~'")
			p.doc.AddError(err)
			coll.Rows = append(coll.Rows, &ast.Error{Range: t.Begin(), EndP: t.End(), Err: err})
			p.skipToRowOrSection()

			continue
		}

		p.advance() // '~'
		coll.Rows = append(coll.Rows, p.parseRow())
	}

	return coll
}

// parseRow parses the members following one "~" marker. An empty row
// (nothing before the next marker/section boundary/EOF) collapses to a
// nil undefined-slot entry. A row consisting of a single scalar becomes
// a one-member anonymous Object (spec §9 Open Question, resolved).
func (p *Parser) parseRow() ast.Node {
	if isRowStop(p.cur) {
		return nil
	}

	members := p.parseMemberList(isRowStop)
	obj := &ast.Object{Members: members}
	obj.DupKeys = p.checkDuplicateKeys(members)

	return obj
}

// skipToRowOrSection advances past tokens until the next "~" or "---" or
// end-of-input, implementing the collection-row recovery policy.
func (p *Parser) skipToRowOrSection() {
	for p.cur != nil && p.cur.Kind != token.KindTilde && p.cur.Kind != token.KindSectionSep {
		p.advance()
	}
}
