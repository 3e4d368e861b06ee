// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ionl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSimpleObject is scenario S1 from spec §8.
func TestParseSimpleObject(t *testing.T) {
	doc, errs := Parse(`{name: "John", age: 30, active: true}`, Options{})
	require.Empty(t, errs)

	val, records := doc.ToJSON()
	require.Empty(t, records)

	data := val[""].(map[string]interface{})
	assert.Equal(t, "John", data["name"])
	assert.Equal(t, 30.0, data["age"])
	assert.Equal(t, true, data["active"])
}

// TestParseMixedArray is scenario S2 from spec §8.
func TestParseMixedArray(t *testing.T) {
	doc, errs := Parse(`{data: [1, "hello", true, null]}`, Options{})
	require.Empty(t, errs)

	val, _ := doc.ToJSON()
	data := val[""].(map[string]interface{})
	arr := data["data"].([]interface{})

	require.Len(t, arr, 4)
	assert.Equal(t, 1.0, arr[0])
	assert.Equal(t, "hello", arr[1])
	assert.Equal(t, true, arr[2])
	assert.Nil(t, arr[3])
}

// TestCollectionWithSchemaAndVariable is scenario S3 from spec §8. The
// data section declares no explicit ": $Name" ref, so it binds to the
// header's one declared schema by default (spec §2).
func TestCollectionWithSchemaAndVariable(t *testing.T) {
	text := "~ @r: red\n" +
		"~ @g: green\n" +
		"~ $schema: {name: string, email: string, color: {string, choices: [@r, @g]}}\n" +
		"---\n" +
		"~ John, john@x, @r\n" +
		"~ Jane, jane@x, @g\n"

	doc, errs := Parse(text, Options{})
	require.Empty(t, errs)

	val, records := doc.ToJSON()
	require.Empty(t, records)

	rows := val[""].([]interface{})
	require.Len(t, rows, 2)

	john := rows[0].(map[string]interface{})
	assert.Equal(t, "John", john["name"])
	assert.Equal(t, "john@x", john["email"])
	assert.Equal(t, "red", john["color"])

	jane := rows[1].(map[string]interface{})
	assert.Equal(t, "Jane", jane["name"])
	assert.Equal(t, "jane@x", jane["email"])
	assert.Equal(t, "green", jane["color"])
}

// TestDuplicateSectionAutoRename is scenario S4 from spec §8.
func TestDuplicateSectionAutoRename(t *testing.T) {
	text := "--- users\n{a: 1}\n--- users\n{a: 2}\n--- users\n{a: 3}\n"

	doc, errs := Parse(text, Options{})
	require.Len(t, doc.AST.Sections, 3)
	assert.Equal(t, "users", doc.AST.Sections[0].SectionName())
	assert.Equal(t, "users_2", doc.AST.Sections[1].SectionName())
	assert.Equal(t, "users_3", doc.AST.Sections[2].SectionName())

	dupCount := 0
	for _, e := range errs {
		if e.Kind == "duplicate-section" {
			dupCount++
		}
	}
	assert.Equal(t, 2, dupCount)
}

// TestCompileSchemaStandalone drives the CompileSchema boundary op.
func TestCompileSchemaStandalone(t *testing.T) {
	s, errs := CompileSchema("person", `{name: string, age: number}`, Options{})
	require.Empty(t, errs)
	require.NotNil(t, s)
	assert.Equal(t, []string{"name", "age"}, s.Names)
}

// TestToJSONWithSchemaRefSection validates a full document whose section
// declares a schema reference resolved through the header (spec §4.4, §6).
func TestToJSONWithSchemaRefSection(t *testing.T) {
	text := "$person: {name: string, age: number}\n" +
		"--- users : $person\n" +
		"~ name: \"ada\", age: 30\n" +
		"~ name: \"bob\", age: 5\n"

	doc, errs := Parse(text, Options{})
	require.Empty(t, errs)

	val, records := doc.ToJSON()
	require.Empty(t, records)

	rows := val["users"].([]interface{})
	require.Len(t, rows, 2)

	ada := rows[0].(map[string]interface{})
	assert.Equal(t, "ada", ada["name"])
	assert.Equal(t, 30.0, ada["age"])
}

// TestEmptyInputYieldsOneEmptySection covers the spec §8 boundary
// behavior: empty input produces no header, one empty data section, and
// no errors.
func TestEmptyInputYieldsOneEmptySection(t *testing.T) {
	doc, errs := Parse("", Options{})
	require.Empty(t, errs)
	require.Nil(t, doc.AST.Header)
	require.Len(t, doc.AST.Sections, 1)
	assert.Nil(t, doc.AST.Sections[0].Child)
}
