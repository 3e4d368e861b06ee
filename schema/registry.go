// SPDX-FileCopyrightText: © 2026 The ionl authors <https://github.com/ionl-lang/ionl/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"sync"

	"github.com/ionl-lang/ionl/ast"
	"github.com/ionl-lang/ionl/token"
)

// Validator validates and normalizes data against def, returning the
// host value to store (spec §4.4's type-specific validators) and any
// diagnostics. Validators are not called for absent fields; the
// processor applies defaults or reports valueRequired for those itself.
type Validator func(data ast.Node, def *MemberDef, ctx *Context) (interface{}, []*token.PosError)

// Registry is a process-wide, idempotent store of type validators (spec
// §4.3 "Registry semantics", §9 "Global registry"). Re-registering an
// existing name is a silent no-op.
type Registry struct {
	mu         sync.Mutex
	validators map[string]Validator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// Register adds name if not already present; a second registration of
// the same name is ignored (idempotent, per spec §4.3).
func (r *Registry) Register(name string, v Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.validators[name]; exists {
		return
	}

	r.validators[name] = v
}

// Get looks up a validator by type name.
func (r *Registry) Get(name string) (Validator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.validators[name]

	return v, ok
}

var (
	defaultRegistry = NewRegistry()
	defaultOnce     sync.Once
)

// Default returns the process-wide Registry, registering the built-in
// types exactly once behind a one-time-init guard (spec §9).
func Default() *Registry {
	defaultOnce.Do(func() {
		registerBuiltins(defaultRegistry)
	})

	return defaultRegistry
}

// ResetRegistryForTest discards the process-wide registry and
// reinitializes it with the built-ins. Tests must use this rather than
// mutating Default() directly, per spec §9.
func ResetRegistryForTest() {
	defaultRegistry = NewRegistry()
	defaultOnce = sync.Once{}
	Default()
}
