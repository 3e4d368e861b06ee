// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"testing"

	"github.com/ionl-lang/ionl/token"
)

func leafOf(s string) *TokenLeaf {
	return &TokenLeaf{Tok: token.NewToken(token.KindOpenString, token.SubStringOpen, token.Pos{Row: 1, Col: 1}, s, token.StringValue(s))}
}

func TestRawValueResolvesVariable(t *testing.T) {
	resolve := func(name string) (token.Value, bool) {
		if name == "r" {
			return token.StringValue("red"), true
		}
		return token.Value{}, false
	}

	got := RawValue(leafOf("@r"), resolve)
	if got != "red" {
		t.Fatalf("got %v, want red", got)
	}
}

func TestRawValueObjectPositionalKeys(t *testing.T) {
	obj := &Object{
		Members: []*Member{
			{Value: leafOf("a")},
			{Value: leafOf("b")},
		},
	}

	got := RawValue(obj, nil).(map[string]interface{})
	if got["0"] != "a" || got["1"] != "b" {
		t.Fatalf("got %+v", got)
	}
}

func TestRawValueNilNode(t *testing.T) {
	if RawValue(nil, nil) != nil {
		t.Fatalf("expected nil for nil node")
	}
}
