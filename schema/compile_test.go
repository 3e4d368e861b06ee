// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionl-lang/ionl/ast"
	"github.com/ionl-lang/ionl/defs"
	"github.com/ionl-lang/ionl/parser"
)

func mustObject(t *testing.T, n ast.Node) *ast.Object {
	t.Helper()

	obj, ok := n.(*ast.Object)
	require.True(t, ok, "body is %T, want *ast.Object", n)

	return obj
}

func TestCompileSimpleObjectSchema(t *testing.T) {
	doc := parser.Parse(`{name: string, age: number}`)
	require.Len(t, doc.Sections, 1)

	obj := mustObject(t, doc.Sections[0].Child)

	s, errs := Compile("person", obj, defs.New())
	require.Empty(t, errs)

	assert.Equal(t, []string{"name", "age"}, s.Names)
	assert.Equal(t, "string", s.Defs["name"].Type)
	assert.Equal(t, "number", s.Defs["age"].Type)
	assert.False(t, s.IsOpenAny())
	assert.True(t, s.IsClosed())
}

func TestCompileOptionalAndNullableSuffixes(t *testing.T) {
	doc := parser.Parse(`{nickname?: string, bio*: string, tag?*: string}`)
	obj := mustObject(t, doc.Sections[0].Child)

	s, errs := Compile("t", obj, defs.New())
	require.Empty(t, errs)

	assert.True(t, s.Defs["nickname"].Optional)
	assert.False(t, s.Defs["nickname"].Nullable)

	assert.True(t, s.Defs["bio"].Nullable)
	assert.False(t, s.Defs["bio"].Optional)

	assert.True(t, s.Defs["tag"].Optional)
	assert.True(t, s.Defs["tag"].Nullable)
}

func TestCompileShorthandConstraints(t *testing.T) {
	doc := parser.Parse(`{status: {string, choices: ["a", "b"]}}`)
	obj := mustObject(t, doc.Sections[0].Child)

	s, errs := Compile("t", obj, defs.New())
	require.Empty(t, errs)

	md := s.Defs["status"]
	assert.Equal(t, "string", md.Type)
	require.Len(t, md.Choices, 2)
	assert.Equal(t, "a", md.Choices[0].Str)
}

func TestCompileKeyedTypeTypedef(t *testing.T) {
	doc := parser.Parse(`{score: {type: number, min: 0, max: 100}}`)
	obj := mustObject(t, doc.Sections[0].Child)

	s, errs := Compile("t", obj, defs.New())
	require.Empty(t, errs)

	md := s.Defs["score"]
	assert.Equal(t, "number", md.Type)
	require.NotNil(t, md.Min)
	require.NotNil(t, md.Max)
	assert.Equal(t, 0.0, *md.Min)
	assert.Equal(t, 100.0, *md.Max)
}

func TestCompileNestedObjectSchema(t *testing.T) {
	doc := parser.Parse(`{address: {street: string, zip: string}}`)
	obj := mustObject(t, doc.Sections[0].Child)

	s, errs := Compile("t", obj, defs.New())
	require.Empty(t, errs)

	addr := s.Defs["address"]
	assert.Equal(t, "object", addr.Type)
	require.NotNil(t, addr.Schema)
	assert.Equal(t, []string{"street", "zip"}, addr.Schema.Names)
}

func TestCompileArrayOfTypedef(t *testing.T) {
	doc := parser.Parse(`{tags: [string], nums: []}`)
	obj := mustObject(t, doc.Sections[0].Child)

	s, errs := Compile("t", obj, defs.New())
	require.Empty(t, errs)

	assert.Equal(t, "string", s.Defs["tags"].Of.Type)
	assert.Equal(t, "any", s.Defs["nums"].Of.Type)
}

func TestCompileSchemaRefField(t *testing.T) {
	doc := parser.Parse(`{owner: $person}`)
	obj := mustObject(t, doc.Sections[0].Child)

	s, errs := Compile("t", obj, defs.New())
	require.Empty(t, errs)

	assert.Equal(t, "object", s.Defs["owner"].Type)
	assert.Equal(t, "person", s.Defs["owner"].SchemaRef)
}

func TestCompileKeylessOpenStringField(t *testing.T) {
	doc := parser.Parse(`{name}`)
	obj := mustObject(t, doc.Sections[0].Child)

	s, errs := Compile("t", obj, defs.New())
	require.Empty(t, errs)

	assert.Equal(t, "any", s.Defs["name"].Type)
}

func TestCompileOpenSchemaSentinelBare(t *testing.T) {
	doc := parser.Parse(`{name: string, *}`)
	obj := mustObject(t, doc.Sections[0].Child)

	s, errs := Compile("t", obj, defs.New())
	require.Empty(t, errs)

	assert.True(t, s.IsOpenAny())
	assert.NotContains(t, s.Names, "*")
}

func TestCompileOpenSchemaSentinelTyped(t *testing.T) {
	doc := parser.Parse(`{name: string, *: number}`)
	obj := mustObject(t, doc.Sections[0].Child)

	s, errs := Compile("t", obj, defs.New())
	require.Empty(t, errs)

	md := s.OpenMemberDef()
	require.NotNil(t, md)
	assert.Equal(t, "number", md.Type)
	assert.Equal(t, md, s.Defs["*"])
}

func TestCompileOpenSentinelMustBeLast(t *testing.T) {
	doc := parser.Parse(`{*, name: string}`)
	obj := mustObject(t, doc.Sections[0].Child)

	_, errs := Compile("t", obj, defs.New())
	require.NotEmpty(t, errs)
}

func TestCompileEmptyFieldListIsOpen(t *testing.T) {
	doc := parser.Parse(`{}`)
	obj := mustObject(t, doc.Sections[0].Child)

	s, errs := Compile("t", obj, defs.New())
	require.Empty(t, errs)
	assert.True(t, s.IsOpenAny())
}

func TestCompileDuplicateFieldIsError(t *testing.T) {
	doc := parser.Parse(`{name: string, name: number}`)
	obj := mustObject(t, doc.Sections[0].Child)

	_, errs := Compile("t", obj, defs.New())
	require.NotEmpty(t, errs)
}
