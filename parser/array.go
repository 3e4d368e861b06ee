// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/ionl-lang/ionl/ast"
	"github.com/ionl-lang/ionl/token"
)

func isArrayEnd(t *token.Token) bool {
	return t == nil || t.Kind == token.KindBracketClose
}

// parseArray parses "[" Value ("," Value)* "]". Unlike Objects, Arrays
// treat consecutive/trailing commas as errors, not undefined slots
// (spec §4.2).
func (p *Parser) parseArray() *ast.Array {
	arr := &ast.Array{Open_: p.cur}
	p.advance() // '['

	for {
		if p.cur != nil && p.cur.Kind == token.KindComma {
			p.doc.AddError(token.NewPosError(p.cur, token.ErrTrailingComma, "unexpected ',' in array"))
			p.advance()
			continue
		}

		if isArrayEnd(p.cur) {
			break
		}

		arr.Children = append(arr.Children, p.parseValue())

		if p.cur != nil && p.cur.Kind == token.KindComma {
			p.advance()
			if isArrayEnd(p.cur) {
				p.doc.AddError(token.NewPosError(p.posNode(), token.ErrTrailingComma, "trailing ',' in array"))
				break
			}
			continue
		}

		break
	}

	if p.cur != nil && p.cur.Kind == token.KindBracketClose {
		arr.Close = p.cur
		p.advance()
	} else {
		p.doc.AddError(token.NewPosError(p.posNode(), token.ErrExpectingBracket, "expected ']'"))
	}

	return arr
}
