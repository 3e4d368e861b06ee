// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package defs

import (
	"testing"

	"github.com/ionl-lang/ionl/token"
)

func TestVarRoundTrip(t *testing.T) {
	d := New()
	d.SetVar("color", token.StringValue("red"))

	v, ok := d.Var("color")
	if !ok || v.Str != "red" {
		t.Fatalf("got %+v, %v, want red, true", v, ok)
	}

	if _, ok := d.Var("missing"); ok {
		t.Fatalf("expected missing var to report false")
	}
}

func TestSchemaRoundTrip(t *testing.T) {
	d := New()
	d.SetSchema("person", "stand-in for *schema.Schema")

	s, ok := d.Schema("person")
	if !ok || s != "stand-in for *schema.Schema" {
		t.Fatalf("got %v, %v", s, ok)
	}
}

func TestBeginResolveDetectsCycle(t *testing.T) {
	d := New()

	if !d.BeginResolve("a") {
		t.Fatalf("first BeginResolve(a) should succeed")
	}
	if d.BeginResolve("a") {
		t.Fatalf("re-entrant BeginResolve(a) should report cyclic")
	}

	d.EndResolve("a")

	if !d.BeginResolve("a") {
		t.Fatalf("BeginResolve(a) should succeed again after EndResolve")
	}
}
