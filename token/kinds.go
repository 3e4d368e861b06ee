// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

// ErrKind constants, grouped per the taxonomy in spec §7.
const (
	// Lex-local.
	ErrUnterminatedString    ErrKind = "unterminated-string"
	ErrInvalidEscape         ErrKind = "invalid-escape"
	ErrInvalidBase64         ErrKind = "invalid-base64"
	ErrInvalidDateTime       ErrKind = "invalid-datetime"
	ErrUnsupportedAnnotation ErrKind = "unsupported-annotation"
	ErrSchemaMissing         ErrKind = "schema-missing"
	ErrInvalidChar           ErrKind = "invalid-char"

	// Parse-structural.
	ErrExpectingBracket ErrKind = "expecting-bracket"
	ErrUnexpectedToken  ErrKind = "unexpected-token"
	ErrUnexpectedEOF    ErrKind = "unexpected-eof"
	ErrEmptyElement     ErrKind = "empty-element"
	ErrTrailingComma    ErrKind = "trailing-comma"
	ErrDuplicateSection ErrKind = "duplicate-section"

	// Schema-compile.
	ErrInvalidSchema   ErrKind = "invalidSchema"
	ErrInvalidType     ErrKind = "invalidType"
	ErrInvalidKey      ErrKind = "invalidKey"
	ErrDuplicateMember ErrKind = "duplicateMember"
	ErrStarPosition    ErrKind = "starPosition"
	ErrEmptyMemberDef  ErrKind = "emptyMemberDef"

	// Schema-resolve.
	ErrSchemaNotDefined   ErrKind = "schemaNotDefined"
	ErrVariableNotDefined ErrKind = "variableNotDefined"
	ErrCyclicSchemaRef    ErrKind = "cyclic-schema-reference"

	// Validation.
	ErrValueRequired     ErrKind = "valueRequired"
	ErrNullNotAllowed    ErrKind = "nullNotAllowed"
	ErrValueNotInChoices ErrKind = "valueNotInChoices"
	ErrOutOfRange        ErrKind = "outOfRange"
	ErrLengthOutOfRange  ErrKind = "lengthOutOfRange"
	ErrPatternMismatch   ErrKind = "patternMismatch"
	ErrExtraField        ErrKind = "extraField"
)
