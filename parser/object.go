// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/ionl-lang/ionl/ast"
	"github.com/ionl-lang/ionl/token"
)

func isKeyable(t *token.Token) bool {
	if t == nil {
		return false
	}

	switch t.Kind {
	case token.KindOpenString, token.KindQuotedString, token.KindNumber, token.KindBoolean, token.KindNull:
		return true
	default:
		return false
	}
}

// parseObject parses an Object body. When braced is true, the caller has
// already confirmed cur is '{'; otherwise this is an "open object"
// consuming members until a section/collection boundary.
func (p *Parser) parseObject(braced bool) *ast.Object {
	obj := &ast.Object{}

	if braced {
		obj.Open_ = p.cur
		p.advance()

		obj.Members = p.parseMemberList(isObjectStop)

		if p.cur != nil && p.cur.Kind == token.KindBraceClose {
			obj.Close = p.cur
			p.advance()
		} else {
			p.doc.AddError(token.NewPosError(p.posNode(), token.ErrExpectingBracket, "expected '}'"))
		}
	} else {
		obj.Members = p.parseMemberList(isOpenObjectStop)
		for !isOpenObjectStop(p.cur) {
			obj.Members = append(obj.Members, p.parseMemberList(isOpenObjectStop)...)
		}
	}

	obj.DupKeys = p.checkDuplicateKeys(obj.Members)

	return obj
}

func isObjectStop(t *token.Token) bool {
	return t == nil || t.Kind == token.KindBraceClose
}

func isOpenObjectStop(t *token.Token) bool {
	return t == nil || t.Kind == token.KindSectionSep || t.Kind == token.KindTilde
}

func isRowStop(t *token.Token) bool {
	return t == nil || t.Kind == token.KindSectionSep || t.Kind == token.KindTilde
}

// posNode returns a positional placeholder for the current token, or a
// synthetic end-of-input position when the stream is exhausted.
func (p *Parser) posNode() token.Node {
	if p.cur != nil {
		return p.cur
	}

	return token.NewNode(token.Unknown, token.Unknown)
}

// parseMemberList parses a comma-separated member list, stopping when
// stop(cur) is true. Missing values between/around commas become nil
// (undefined-slot) members, per spec §4.2 ("{,,,}" yields three undefined
// slots plus the trailing one == four total).
func (p *Parser) parseMemberList(stop func(*token.Token) bool) []*ast.Member {
	if stop(p.cur) {
		return nil
	}

	var members []*ast.Member

	for {
		var m *ast.Member

		if p.cur != nil && p.cur.Kind == token.KindComma {
			m = nil
		} else {
			m = p.parseOneMember()
		}

		members = append(members, m)

		if p.cur != nil && p.cur.Kind == token.KindComma {
			p.advance()
			if stop(p.cur) {
				members = append(members, nil)
				break
			}
			continue
		}

		break
	}

	return members
}

// parseOneMember parses "key: value" when the lookahead confirms a key,
// otherwise a bare positional value.
func (p *Parser) parseOneMember() *ast.Member {
	if isKeyable(p.cur) && p.nxt != nil && p.nxt.Kind == token.KindColon {
		keyTok := p.cur
		p.advance() // key
		p.advance() // ':'

		val := p.parseValue()

		return &ast.Member{Key: &ast.TokenLeaf{Tok: keyTok}, Value: val}
	}

	val := p.parseValue()

	return &ast.Member{Value: val}
}

// parseValue parses a single Value per spec §4.2's grammar: Object |
// Array | Token-leaf.
func (p *Parser) parseValue() ast.Node {
	if p.cur == nil {
		err := token.NewPosError(p.posNode(), token.ErrUnexpectedEOF, "unexpected end of input, expected a value")
		p.doc.AddError(err)
		return &ast.Error{Range: token.Unknown, EndP: token.Unknown, Err: err}
	}

	switch p.cur.Kind {
	case token.KindBraceOpen:
		return p.parseObject(true)
	case token.KindBracketOpen:
		return p.parseArray()
	case token.KindError:
		t := p.cur
		p.doc.AddError(t.Err)
		p.advance()
		return &ast.Error{Range: t.Begin(), EndP: t.End(), Err: t.Err}
	case token.KindOpenString, token.KindQuotedString, token.KindRawString,
		token.KindBinaryString, token.KindDateTime, token.KindNumber,
		token.KindBigInt, token.KindDecimal, token.KindBoolean, token.KindNull:
		leaf := &ast.TokenLeaf{Tok: p.cur}
		p.advance()
		return leaf
	default:
		t := p.cur
		err := token.NewPosError(t, token.ErrUnexpectedToken, "unexpected token '"+t.Kind.String()+"'")
		p.doc.AddError(err)
		p.advance()
		return &ast.Error{Range: t.Begin(), EndP: t.End(), Err: err}
	}
}

// checkDuplicateKeys enforces spec §3's invariant: duplicate keys in raw
// data Objects are flagged (last-wins is forbidden), referencing the
// first occurrence. The first occurrence's value remains authoritative
// at the Object level; callers needing the "used" value read
// Members[first].
func (p *Parser) checkDuplicateKeys(members []*ast.Member) []*token.PosError {
	seen := make(map[string]*ast.Member)
	var dups []*token.PosError

	for _, m := range members {
		if m == nil || m.Key == nil {
			continue
		}

		key := m.KeyString()
		if first, ok := seen[key]; ok {
			err := token.NewValidationError(m, token.ErrDuplicateMember,
				"duplicate member '"+key+"', first occurrence at "+first.Begin().String())
			dups = append(dups, err)
			p.doc.AddError(err)

			continue
		}

		seen[key] = m
	}

	return dups
}
