// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"testing"

	"github.com/ionl-lang/ionl/ast"
)

func TestParseSimpleObject(t *testing.T) {
	doc := Parse(`{name: "ada", age: 30}`)

	if len(doc.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(doc.Sections))
	}

	obj, ok := doc.Sections[0].Child.(*ast.Object)
	if !ok {
		t.Fatalf("body is %T, want *ast.Object", doc.Sections[0].Child)
	}

	if len(obj.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(obj.Members))
	}

	if obj.Members[0].KeyString() != "name" {
		t.Fatalf("member 0 key = %q, want name", obj.Members[0].KeyString())
	}
}

func TestParseHeaderSection(t *testing.T) {
	text := "@color: \"red\"\n$person: {name: string, age: number}\n--- users\n{name: \"ada\"}\n"
	doc := Parse(text)

	if doc.Header == nil {
		t.Fatalf("expected a header section")
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("got %d data sections, want 1", len(doc.Sections))
	}
	if doc.Sections[0].SectionName() != "users" {
		t.Fatalf("section name = %q, want users", doc.Sections[0].SectionName())
	}
}

func TestParseSectionWithSchemaRef(t *testing.T) {
	text := "$person: {name: string}\n--- users : $person\n{name: \"ada\"}\n"
	doc := Parse(text)

	if doc.Sections[0].SchemaRefName() != "$person" {
		t.Fatalf("schema ref = %q, want $person", doc.Sections[0].SchemaRefName())
	}
}

func TestParseCollection(t *testing.T) {
	doc := Parse("~\n{name: \"a\"}\n~\n{name: \"b\"}\n")

	coll, ok := doc.Sections[0].Child.(*ast.Collection)
	if !ok {
		t.Fatalf("body is %T, want *ast.Collection", doc.Sections[0].Child)
	}
	if len(coll.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(coll.Rows))
	}
}

func TestParseArray(t *testing.T) {
	doc := Parse(`{tags: [1, 2, 3]}`)

	obj := doc.Sections[0].Child.(*ast.Object)
	arr, ok := obj.Members[0].Value.(*ast.Array)
	if !ok {
		t.Fatalf("tags value is %T, want *ast.Array", obj.Members[0].Value)
	}
	if len(arr.Children) != 3 {
		t.Fatalf("got %d elements, want 3", len(arr.Children))
	}
}

func TestParseDuplicateSectionRename(t *testing.T) {
	text := "--- users\n{a: 1}\n--- users\n{a: 2}\n"
	doc := Parse(text)

	if len(doc.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(doc.Sections))
	}
	if doc.Sections[1].SectionName() != "users_2" {
		t.Fatalf("second section name = %q, want users_2", doc.Sections[1].SectionName())
	}
	if len(doc.Errors) == 0 {
		t.Fatalf("expected a duplicate-section diagnostic")
	}
}

func TestParseDuplicateKeysFlagged(t *testing.T) {
	doc := Parse(`{a: 1, a: 2}`)

	if len(doc.Errors) == 0 {
		t.Fatalf("expected a duplicate-key diagnostic")
	}
}

func TestParseEmptyInputYieldsOneSection(t *testing.T) {
	doc := Parse("")

	if doc.Header != nil {
		t.Fatalf("expected no header")
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(doc.Sections))
	}
	if doc.Sections[0].Child != nil {
		t.Fatalf("expected an empty data section, got %T", doc.Sections[0].Child)
	}
	if len(doc.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", doc.Errors)
	}
}

func TestParseWhitespaceAndCommentOnlyInput(t *testing.T) {
	doc := Parse("   \n# just a comment\n\n")

	if len(doc.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(doc.Sections))
	}
	if doc.Sections[0].Child != nil {
		t.Fatalf("expected an empty data section, got %T", doc.Sections[0].Child)
	}
	if len(doc.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", doc.Errors)
	}
}

func TestParseCommentInsideObjectIsTrivia(t *testing.T) {
	doc := Parse("{a: 1 # trailing note\n, b: 2}")

	obj, ok := doc.Sections[0].Child.(*ast.Object)
	if !ok {
		t.Fatalf("body is %T, want *ast.Object", doc.Sections[0].Child)
	}
	if len(obj.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(obj.Members))
	}
	if len(doc.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", doc.Errors)
	}
}
