package gen

import (
	"strings"

	"pygi-codegen/internal/catalog"
	"pygi-codegen/internal/diagnostic"
	"pygi-codegen/internal/gir"
)

// Context is the run-scoped state builders render against. Each generation
// run owns one; nothing about it is global.
type Context struct {
	Namespace string
	Structs   *StructTable
	Diags     *diagnostic.Diagnostics
}

// NewContext creates an empty context for one namespace.
func NewContext(namespace string) *Context {
	return &Context{
		Namespace: namespace,
		Structs:   NewStructTable(),
		Diags:     &diagnostic.Diagnostics{},
	}
}

// StructTable is the registered-struct table: every class-like type of the
// run, keyed by "Namespace.Name". It is the catalog's Registry.
type StructTable struct {
	byName map[string]*ClassBuilder
	order  []string
}

var _ catalog.Registry = (*StructTable)(nil)

// NewStructTable creates an empty table.
func NewStructTable() *StructTable {
	return &StructTable{byName: make(map[string]*ClassBuilder)}
}

// Register adds a class builder. Registering the same name twice is a bug in
// the caller and reported as an error.
func (t *StructTable) Register(b *ClassBuilder) error {
	if _, dup := t.byName[b.FullName]; dup {
		return &DuplicateTypeError{Name: b.FullName}
	}

	t.byName[b.FullName] = b
	t.order = append(t.order, b.FullName)

	return nil
}

// Lookup implements catalog.Registry.
func (t *StructTable) Lookup(fullName string) (catalog.Composite, bool) {
	b, ok := t.byName[fullName]
	if !ok {
		return nil, false
	}

	return b, true
}

// Class returns the builder registered under fullName.
func (t *StructTable) Class(fullName string) (*ClassBuilder, bool) {
	b, ok := t.byName[fullName]

	return b, ok
}

// Names returns the registered names in registration order.
func (t *StructTable) Names() []string {
	return t.order
}

// Len returns the number of registered types.
func (t *StructTable) Len() int {
	return len(t.order)
}

// qualify turns a possibly unqualified descriptor name into "Namespace.Name".
func qualify(namespace, name string) string {
	if strings.Contains(name, ".") {
		return name
	}

	return namespace + "." + name
}

// parentOf returns the registered parent of a class, if it is generated in
// the same run.
func (t *StructTable) parentOf(info *gir.Info) (*ClassBuilder, bool) {
	if info.Parent == "" {
		return nil, false
	}

	return t.Class(qualify(info.Namespace, info.Parent))
}
