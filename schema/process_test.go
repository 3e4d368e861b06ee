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
	"github.com/ionl-lang/ionl/token"
)

func TestProcessRequiredFieldMissing(t *testing.T) {
	doc := parser.Parse(`{name: string, age: number}`)
	schemaObj := mustObject(t, doc.Sections[0].Child)
	s, errs := Compile("person", schemaObj, defs.New())
	require.Empty(t, errs)

	data := parser.Parse(`{name: "ada"}`)
	dataObj := mustObject(t, data.Sections[0].Child)

	_, verrs := Process(dataObj, s, defs.New())
	require.Len(t, verrs, 1)
	assert.EqualValues(t, "valueRequired", verrs[0].Kind)
}

func TestProcessOpenTypedSchemaRejectsWrongType(t *testing.T) {
	// spec §8 S6: schema {name, *: number}
	doc := parser.Parse(`{name, *: number}`)
	schemaObj := mustObject(t, doc.Sections[0].Child)
	s, errs := Compile("t", schemaObj, defs.New())
	require.Empty(t, errs)

	bad := parser.Parse(`{name: John, extra: "oops"}`)
	badObj := mustObject(t, bad.Sections[0].Child)
	_, verrs := Process(badObj, s, defs.New())
	require.NotEmpty(t, verrs)

	good := parser.Parse(`{name: John, extra: 42}`)
	goodObj := mustObject(t, good.Sections[0].Child)
	val, verrs := Process(goodObj, s, defs.New())
	require.Empty(t, verrs)

	m := val.(map[string]interface{})
	assert.Equal(t, 42.0, m["extra"])
}

func TestProcessClosedSchemaRejectsExtraField(t *testing.T) {
	doc := parser.Parse(`{name: string}`)
	schemaObj := mustObject(t, doc.Sections[0].Child)
	s, errs := Compile("t", schemaObj, defs.New())
	require.Empty(t, errs)

	data := parser.Parse(`{name: "ada", extra: 1}`)
	dataObj := mustObject(t, data.Sections[0].Child)

	_, verrs := Process(dataObj, s, defs.New())
	require.Len(t, verrs, 1)
}

func TestProcessVariableResolution(t *testing.T) {
	// spec §8 S3: a collection row referencing an "@var" must resolve
	// through Definitions before type validation.
	doc := parser.Parse(`{color: string}`)
	schemaObj := mustObject(t, doc.Sections[0].Child)
	s, errs := Compile("t", schemaObj, defs.New())
	require.Empty(t, errs)

	d := defs.New()
	d.SetVar("r", token.StringValue("red"))

	data := parser.Parse(`{color: @r}`)
	dataObj := mustObject(t, data.Sections[0].Child)

	val, verrs := Process(dataObj, s, d)
	require.Empty(t, verrs)

	m := val.(map[string]interface{})
	assert.Equal(t, "red", m["color"])
}

func TestProcessCollectionRowIndexResetsPerCall(t *testing.T) {
	doc := parser.Parse(`{name: string}`)
	schemaObj := mustObject(t, doc.Sections[0].Child)
	s, errs := Compile("t", schemaObj, defs.New())
	require.Empty(t, errs)

	data := parser.Parse("~ name: \"a\"\n~ wrong: 1\n~ name: \"c\"\n")
	coll, ok := data.Sections[0].Child.(*ast.Collection)
	require.True(t, ok)

	for call := 0; call < 2; call++ {
		_, verrs := Process(coll, s, defs.New())
		require.NotEmpty(t, verrs)
		for _, e := range verrs {
			assert.Equal(t, 1, e.CollectionIndex)
		}
	}
}

func TestProcessSchemaNotDefined(t *testing.T) {
	data := parser.Parse(`{name: "a"}`)
	dataObj := mustObject(t, data.Sections[0].Child)

	_, verrs := Process(dataObj, "missing", defs.New())
	require.Len(t, verrs, 1)
}

func TestProcessNullDataReturnsNil(t *testing.T) {
	doc := parser.Parse(`{name: string}`)
	schemaObj := mustObject(t, doc.Sections[0].Child)
	s, errs := Compile("t", schemaObj, defs.New())
	require.Empty(t, errs)

	val, verrs := Process(nil, s, defs.New())
	require.Nil(t, val)
	require.Empty(t, verrs)
}
